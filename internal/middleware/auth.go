// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const principalKey ctxKey = "principal"

// TokenVerifier validates a session token and returns the bound account id.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header, verifies the token
// and stores the account id in the request context, so it can be used
// downstream as the authenticated principal. Requests with a missing,
// malformed or expired token are rejected with 401 and a JSON error body.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w)
				return
			}
			accountID, err := verifier.Verify(raw)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipalFromContext extracts the authenticated account id from the
// request context. Returns an empty string if not found.
func GetPrincipalFromContext(ctx context.Context) string {
	val := ctx.Value(principalKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
