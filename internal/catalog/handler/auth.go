package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"storefront/internal/catalog/service"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
	"storefront/pkg/model"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, h.log, "Login", err)
		return
	}

	session, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		writeError(w, h.log, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}
