package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/validation"
)

// HeaderRequestID carries the request id on requests and responses.
const HeaderRequestID = "X-Request-Id"

// RequestID propagates a UUID X-Request-Id header, generating one when
// the incoming value is absent or not a UUID. The id is also stored in the
// request context for logging.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if !validation.IsUUID(id) {
				id = uuid.New().String()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
		})
	}
}
