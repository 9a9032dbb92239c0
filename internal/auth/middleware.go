package auth

import (
	"context"
	"net/http"
	"strings"

	"MiniShop/pkg/kit"
)

type ctxKey string

const clientIDKey ctxKey = "client_id"

func ClientIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(clientIDKey).(string)
	return v, ok && v != ""
}

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// RequireClient rejects requests without a valid bearer token and stores the
// token's client id in the request context.
func RequireClient(tokens *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(authz, "Bearer "))
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), claims.ClientID())))
		})
	}
}
