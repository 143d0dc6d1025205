package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lemarche/marketplace-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id for log correlation. An id sent
// by the caller is kept; otherwise a fresh one is generated. The id is
// echoed back in the response header either way.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
