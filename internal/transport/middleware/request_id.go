package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request id between services and back to clients.
const RequestIDHeader = "X-Request-Id"

// RequestID trusts an incoming X-Request-Id when present and mints a UUID
// otherwise. The id is stored in the request context and echoed on the
// response so clients can quote it in support requests.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
