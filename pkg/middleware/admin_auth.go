package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	apperrors "storefront/pkg/errors"
	httputil "storefront/pkg/http"
	"storefront/pkg/logger"
)

// AdminAuth lets a request through only when it carries
// "Authorization: Bearer <token>" with the configured admin token.
func AdminAuth(token string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				log.Warn("Admin request rejected",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"method", r.Method,
					"token_present", ok,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
