package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/julienmatondotezolo/ada-stock/internal/http/ratelimit"
)

// RateLimit limits requests per client IP. chi's RealIP should run first.
func RateLimit(l *ratelimit.Limiter, onLimit func(w http.ResponseWriter)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				onLimit(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
