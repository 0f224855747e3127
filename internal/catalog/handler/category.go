package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"storefront/internal/catalog/service"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
	"storefront/pkg/model"
)

type CategoryHandler struct {
	service service.CategoryService
	log     *logger.Logger
}

func NewCategoryHandler(service service.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.log, "ListCategories", err)
		return
	}

	if err := httputil.WriteSuccess(w, categories); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCategories", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		writeError(w, h.log, "GetCategory", err)
		return
	}

	if err := httputil.WriteSuccess(w, c); err != nil {
		h.log.Error("failed to write success response", "handler", "GetCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var c model.Category
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, h.log, "CreateCategory", err)
		return
	}

	if err := h.service.Create(r.Context(), &c); err != nil {
		writeError(w, h.log, "CreateCategory", err)
		return
	}

	if err := httputil.WriteCreated(w, c, "Category created successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateCategory", "operation", "WriteCreated", "error", err)
	}
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.CategoryUpdate
	if err := decodeJSON(r, &updates); err != nil {
		writeError(w, h.log, "UpdateCategory", err)
		return
	}

	c, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		writeError(w, h.log, "UpdateCategory", err)
		return
	}

	if err := httputil.WriteSuccess(w, c); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, h.log, "DeleteCategory", err)
		return
	}

	if err := httputil.WriteMessage(w, "Category deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "DeleteCategory", "operation", "WriteMessage", "error", err)
	}
}
