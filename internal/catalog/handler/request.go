package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "storefront/pkg/errors"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.Wrap(err, apperrors.CodeInvalidInput, "Invalid request body", http.StatusBadRequest)
	}
	return nil
}

func writeError(w http.ResponseWriter, log *logger.Logger, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
