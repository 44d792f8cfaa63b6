package httpserver

import (
	"context"
	"net/http"
	"strings"

	accountports "helvetia/contexts/identity/account-service/ports"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// Auth validates the bearer token and injects user id and role into the
// request context. Requests without a valid token are rejected.
func Auth(tokens accountports.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if raw == "" || raw == header {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFrom(ctx context.Context) string {
	value, _ := ctx.Value(userIDKey).(string)
	return value
}

func roleFrom(ctx context.Context) string {
	value, _ := ctx.Value(roleKey).(string)
	return value
}
