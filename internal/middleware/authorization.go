package middleware

import (
	"context"
	"net/http"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLookup resolves an authenticated user id to its stored record.
// Satisfied by service.UserService.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// RequireAdmin ensures the authenticated caller's stored record carries
// the admin role. The check reads the database rather than trusting the
// role claim, so a role change takes effect on the next request. A
// missing user record is treated as forbidden, not as a server error.
func RequireAdmin(users UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr, ok := GetUserID(r.Context())
			if !ok {
				logger.Warn("User id not found in context")
				RespondWithError(w, http.StatusForbidden, "Forbidden: admin access required")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Warn("Malformed user id in context", zap.String("user_id", userIDStr))
				RespondWithError(w, http.StatusForbidden, "Forbidden: admin access required")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				logger.Warn("User record not found for admin check", zap.String("user_id", userIDStr))
				RespondWithError(w, http.StatusForbidden, "Forbidden: admin access required")
				return
			}

			if user.Role != domain.RoleAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("user_id", userIDStr),
					zap.Int("role", user.Role),
				)
				RespondWithError(w, http.StatusForbidden, "Forbidden: admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
