package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/security"
	"github.com/nutriplan/v1/pkg/errors"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*security.Claims, error)
}

// Authenticate requires a valid bearer token and stores its user ID in the request context
func Authenticate(tokens TokenValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, r, http.StatusUnauthorized, errors.NewUnauthorizedError("Authorization header required"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeError(w, r, http.StatusUnauthorized, errors.NewUnauthorizedError("Invalid authorization header format"))
				return
			}

			claims, err := tokens.ValidateToken(r.Context(), parts[1])
			if err != nil {
				logger.Info("Token validation failed",
					zap.Error(err),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, r, http.StatusUnauthorized, errors.NewUnauthorizedError("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.SubjectID())))
		})
	}
}

// WithUserID returns a context carrying the authenticated user
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID extracts the authenticated user from the request context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
