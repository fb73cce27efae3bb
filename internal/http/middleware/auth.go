package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienmatondotezolo/ada-stock/internal/auth"
)

type contextKey string

const subjectKey = contextKey("subject")

// TokenParser is satisfied by *auth.Signer.
type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

// RequireToken rejects requests without a valid bearer token. A nil parser
// lets every request through.
func RequireToken(parser TokenParser, onFail func(w http.ResponseWriter, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if parser == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				onFail(w, "missing or invalid token")
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				onFail(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the token subject of an authenticated request.
func Subject(r *http.Request) string {
	if val, ok := r.Context().Value(subjectKey).(string); ok {
		return val
	}
	return ""
}
