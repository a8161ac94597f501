package api

import (
	"context"
	"net"
	"net/http"
)

// clientInfoKey is the context key for client connection details.
const clientInfoKey ctxKey = "clientInfo"

// clientInfo carries the connection details the auth service records on
// sessions.
type clientInfo struct {
	IP        string
	UserAgent string
}

// clientInfoMiddleware stores the client IP and user agent in context so
// huma handlers can reach them. Runs after chi's RealIP middleware.
func clientInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		ctx := context.WithValue(r.Context(), clientInfoKey, clientInfo{
			IP:        ip,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getClientInfo returns the connection details, or zero values outside an
// HTTP request (tests driving handlers directly).
func getClientInfo(ctx context.Context) clientInfo {
	if info, ok := ctx.Value(clientInfoKey).(clientInfo); ok {
		return info
	}
	return clientInfo{}
}
