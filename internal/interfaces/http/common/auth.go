package common

import (
	"context"
	"net/http"
	"strings"

	"github.com/livinglux/coliving-site/internal/session"
	"go.uber.org/zap"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser is the principal behind an anonymous session token.
type AuthenticatedUser struct {
	ID        string `json:"id"`
	Anonymous bool   `json:"anonymous"`
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// AuthMiddleware rejects requests without a valid Bearer session token and
// stores the principal in the request context.
func AuthMiddleware(logger *zap.Logger, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				WriteError(logger, w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				WriteError(logger, w, http.StatusUnauthorized, "expected a Bearer token")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if tokenString == "" {
				WriteError(logger, w, http.StatusUnauthorized, "empty access token")
				return
			}

			claims, err := sessions.Verify(tokenString)
			if err != nil {
				WriteError(logger, w, http.StatusUnauthorized, "invalid session")
				return
			}

			ctx := ContextWithUser(r.Context(), AuthenticatedUser{ID: claims.Subject, Anonymous: claims.Anonymous})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
