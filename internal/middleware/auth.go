// Package middleware holds the HTTP middleware chain: request metadata, access logging, panic recovery,
// CORS, body limits and the guards that authenticate and authorize callers.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/auth"
	"go.uber.org/zap"
)

const (
	unauthorizedMessage = "unauthorized access"
	forbiddenMessage    = "forbidden access"
)

// TokenVerifier is the interface that wraps the Verify method.
//
// Verify decodes a session token and returns its claims, or an error if the token cannot be trusted.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// AuthMiddleware validates the bearer token of the request and stores its claims in the context.
// Requests without an Authorization header are rejected without consulting the verifier.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Debug("token rejected",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the verified claims from context
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

// EmailFromContext retrieves the verified identity from context
func EmailFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	email := claims.Email()
	return email, email != ""
}

// WithClaims returns a copy of ctx carrying claims, as AuthMiddleware would
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// URLParam returns the unescaped value of the chi route parameter "key"
func URLParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// writeError sends an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
