package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"storefront/internal/catalog/service"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
	"storefront/pkg/model"
)

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviews, err := h.service.ListByProduct(r.Context(), r.URL.Query().Get("product"))
	if err != nil {
		writeError(w, h.log, "ListReviews", err)
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListReviews", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review model.Review
	if err := decodeJSON(r, &review); err != nil {
		writeError(w, h.log, "CreateReview", err)
		return
	}

	if err := h.service.Create(r.Context(), &review); err != nil {
		writeError(w, h.log, "CreateReview", err)
		return
	}

	if err := httputil.WriteCreated(w, review, "Review submitted successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateReview", "operation", "WriteCreated", "error", err)
	}
}
