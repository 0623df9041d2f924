// Package server assembles the HTTP router: ambient middleware, API docs and every resource route
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/talkbridge/backend/internal/config"
	"github.com/talkbridge/backend/internal/handlers"
	"github.com/talkbridge/backend/internal/middleware"
	"go.uber.org/zap"
)

// Handlers groups the resource handlers served by the router
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Posts         *handlers.PostHandler
	Announcements *handlers.AnnouncementHandler
	Payments      *handlers.PaymentHandler
	Comments      *handlers.CommentHandler
	Health        *handlers.HealthHandler
}

// NewRouter builds the application router.
//
// "verifier" authenticates bearer tokens for guarded routes and "roles" resolves the stored role for admin-only routes.
func NewRouter(cfg *config.Config, h Handlers, verifier middleware.TokenVerifier, roles middleware.RoleLookup, logger *zap.Logger) http.Handler {
	authMiddleware := middleware.AuthMiddleware(verifier, logger)
	adminMiddleware := middleware.AdminMiddleware(roles, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	}
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	h.Health.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	h.Users.RegisterRoutes(r, authMiddleware, adminMiddleware)
	h.Posts.RegisterRoutes(r, authMiddleware, adminMiddleware)
	h.Announcements.RegisterRoutes(r, authMiddleware, adminMiddleware)
	h.Payments.RegisterRoutes(r, authMiddleware)
	h.Comments.RegisterRoutes(r, authMiddleware, adminMiddleware)

	return r
}
