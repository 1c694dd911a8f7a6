// internal/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"bayou-social/internal/auth"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
)

// AuthGate validates session tokens on protected routes and attaches the
// verified user ID to the request context for the duration of one request.
type AuthGate struct {
	tokens *auth.TokenService
}

func NewAuthGate(tokens *auth.TokenService) *AuthGate {
	return &AuthGate{tokens: tokens}
}

// Protect wraps a handler so it only runs for requests carrying a valid token.
// A missing Authorization header fails with ACCESS_DENIED; a present but
// unverifiable token fails with INVALID_TOKEN.
func (g *AuthGate) Protect(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteHTTPError(w, utils.NewAppError(utils.ErrAccessDenied, "Access denied", nil))
			return
		}

		// The Bearer scheme marker is optional; strip it when present
		tokenString := authHeader
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
		}

		userID, err := g.tokens.Verify(tokenString)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			utils.WriteHTTPError(w, utils.NewAppError(utils.ErrInvalidToken, "Invalid token", err))
			return
		}

		ctx := SetUserIDInContext(r.Context(), userID)
		handler(w, r.WithContext(ctx))
	}
}

// Define a custom context key type to avoid collisions
type contextKey string

// UserIDKey is the key used to store the user ID in the context
const UserIDKey contextKey = "user_id"

// SetUserIDInContext saves the user ID in the request context
func SetUserIDInContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID from the context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
