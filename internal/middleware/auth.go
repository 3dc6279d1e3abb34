package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	// TokenContextKey is the context key for the customer access token.
	TokenContextKey contextKey = "access_token"
)

// WithAccessToken extracts the customer's bearer access token and adds it to
// the request context. The token is opaque to this service; the commerce
// platform validates it. This middleware is optional - handlers that mutate
// account state are additionally wrapped in RequireToken.
func WithAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			ctx := context.WithValue(r.Context(), TokenContextKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireToken rejects requests without an access token. This replaces the
// silent no-op guard the account pages used to have: a missing credential is
// an explicit 401, not a dropped submission.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAccessToken(r.Context()) == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAccessToken retrieves the access token from the context, or "".
func GetAccessToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenContextKey).(string); ok {
		return token
	}
	return ""
}
