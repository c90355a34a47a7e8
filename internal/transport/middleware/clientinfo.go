package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// ClientInfo records the caller's IP address and user agent in the request
// context so activity log entries can attribute actions to a client.
func ClientInfo() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := ctxutil.ClientInfo{
				IPAddress: clientIP(r),
				UserAgent: r.UserAgent(),
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithClientInfo(r.Context(), info)))
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the originating client.
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
