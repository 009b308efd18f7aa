package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in responses and is honored
// on requests so upstream proxies can propagate their own IDs.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a unique ID, stored in the context
// and echoed in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), id)))
	})
}
