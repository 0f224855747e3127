package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"storefront/internal/catalog/service"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
	"storefront/pkg/model"
	"storefront/pkg/pagination"
)

type ProductHandler struct {
	service service.ProductService
	log     *logger.Logger
}

func NewProductHandler(service service.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := service.ProductQuery{
		Category: r.URL.Query().Get("category"),
		Featured: httputil.QueryFlag(r, "featured"),
		Premium:  httputil.QueryFlag(r, "premium"),
		Custom:   httputil.QueryFlag(r, "custom"),
	}

	products, window, err := h.service.List(r.Context(), query, httputil.ExtractWindow(r))
	if err != nil {
		writeError(w, h.log, "ListProducts", err)
		return
	}

	if err := httputil.WritePaginated(w, products, window); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListProducts", "operation", "WritePaginated", "error", err)
	}
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		writeError(w, h.log, "GetProduct", err)
		return
	}

	if err := httputil.WriteSuccess(w, p); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProduct", "operation", "WriteSuccess", "error", err)
	}
}

// Search takes q and an optional limit. A missing, zero or unreadable limit
// lets the service pick its default.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	limit := pagination.CoerceOptionalLimit(query.Get("limit"))

	products, err := h.service.Search(r.Context(), query.Get("q"), limit)
	if err != nil {
		writeError(w, h.log, "SearchProducts", err)
		return
	}

	if err := httputil.WriteSuccess(w, products); err != nil {
		h.log.Error("failed to write success response", "handler", "SearchProducts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProductHandler) Contact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	link, err := h.service.Contact(r.Context(), ps.ByName("slug"))
	if err != nil {
		writeError(w, h.log, "ProductContact", err)
		return
	}

	if err := httputil.WriteSuccess(w, link); err != nil {
		h.log.Error("failed to write success response", "handler", "ProductContact", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, h.log, "CreateProduct", err)
		return
	}

	if err := h.service.Create(r.Context(), &p); err != nil {
		writeError(w, h.log, "CreateProduct", err)
		return
	}

	if err := httputil.WriteCreated(w, p, "Product created successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateProduct", "operation", "WriteCreated", "error", err)
	}
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ProductUpdate
	if err := decodeJSON(r, &updates); err != nil {
		writeError(w, h.log, "UpdateProduct", err)
		return
	}

	p, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		writeError(w, h.log, "UpdateProduct", err)
		return
	}

	if err := httputil.WriteSuccess(w, p); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProduct", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, h.log, "DeleteProduct", err)
		return
	}

	if err := httputil.WriteMessage(w, "Product deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "DeleteProduct", "operation", "WriteMessage", "error", err)
	}
}
