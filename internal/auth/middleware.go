package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey int

const identityContextKey contextKey = iota

// IdentityFromContext extracts the authenticated identity from the request
// context. Returns nil if no identity is present (unauthenticated request).
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityContextKey).(*Identity)
	return identity
}

// WithIdentity returns a context carrying the identity. Used by tests to
// exercise handlers without going through the middleware.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// Middleware returns an HTTP middleware that verifies bearer tokens and
// attaches the resulting identity to the request context. Downstream
// handlers trust that identity without further store lookups.
func (t *Tokens) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				log.Warn().Msg("Missing or malformed Authorization header")
				writeUnauthorized(w)
				return
			}

			identity, err := t.Verify(tokenString)
			if err != nil {
				log.Warn().Err(err).Msg("Token verification failed")
				writeUnauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
