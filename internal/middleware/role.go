package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
	"go.uber.org/zap"
)

// RoleLookup is the interface that wraps the GetRole method.
//
// GetRole returns the currently stored role of the user with "email".
// An unknown user is reported with repositories.ErrNotFound.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (models.Role, error)
}

// AdminMiddleware admits only callers whose stored role is admin.
// It must run after AuthMiddleware; the role is read once per request and never taken from the token.
func AdminMiddleware(lookup RoleLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			role, err := lookup.GetRole(r.Context(), email)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					writeError(w, http.StatusForbidden, forbiddenMessage)
					return
				}
				logger.Error("failed to look up user role",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("email", email),
					zap.Error(err),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if role != models.RoleAdmin {
				writeError(w, http.StatusForbidden, forbiddenMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
