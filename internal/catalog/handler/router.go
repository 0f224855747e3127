package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/middleware"
)

// CatalogHandler mounts the public storefront routes and the bearer guarded
// admin routes on one router.
type CatalogHandler struct {
	categories *CategoryHandler
	products   *ProductHandler
	reviews    *ReviewHandler
	auth       *AuthHandler
	guard      func(http.Handler) http.Handler
	log        *logger.Logger
}

func NewCatalogHandler(
	categories *CategoryHandler,
	products *ProductHandler,
	reviews *ReviewHandler,
	auth *AuthHandler,
	adminToken string,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		products:   products,
		reviews:    reviews,
		auth:       auth,
		guard:      middleware.AdminAuth(adminToken, log),
		log:        log,
	}
}

func (h *CatalogHandler) admin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		h.guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next(w, r, ps)
		})).ServeHTTP(w, r)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/categories", h.categories.List)
	router.GET("/api/categories/:slug", h.categories.GetBySlug)

	router.GET("/api/products", h.products.List)
	router.GET("/api/products/:slug", h.products.GetBySlug)
	router.GET("/api/products/:slug/contact", h.products.Contact)
	router.GET("/api/search", h.products.Search)

	router.GET("/api/reviews", h.reviews.List)
	router.POST("/api/reviews", h.reviews.Create)

	router.POST("/api/auth/login", h.auth.Login)

	router.POST("/api/admin/categories", h.admin(h.categories.Create))
	router.PUT("/api/admin/categories/:id", h.admin(h.categories.Update))
	router.DELETE("/api/admin/categories/:id", h.admin(h.categories.Delete))

	router.POST("/api/admin/products", h.admin(h.products.Create))
	router.PUT("/api/admin/products/:id", h.admin(h.products.Update))
	router.DELETE("/api/admin/products/:id", h.admin(h.products.Delete))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, h.log, "NotFound", apperrors.NotFound("Route"))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, h.log, "MethodNotAllowed", apperrors.New(
			apperrors.CodeInvalidInput,
			"Method not allowed",
			http.StatusMethodNotAllowed,
		))
	})
}
