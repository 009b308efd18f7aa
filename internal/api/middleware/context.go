package middleware

import (
	"context"
	"net"
	"net/http"
)

type contextKey string

const requestIDKey contextKey = "request_id"

func setRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request ID assigned by the RequestID
// middleware.
func GetRequestID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey).(string)
	return id, ok
}

// clientIP extracts the caller's address, without the port. Falls back
// to the raw RemoteAddr when it has no port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
