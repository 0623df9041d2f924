package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/talkbridge/backend/docs"
	"github.com/talkbridge/backend/internal/auth"
	"github.com/talkbridge/backend/internal/config"
	"github.com/talkbridge/backend/internal/database"
	"github.com/talkbridge/backend/internal/handlers"
	"github.com/talkbridge/backend/internal/logger"
	"github.com/talkbridge/backend/internal/payments"
	"github.com/talkbridge/backend/internal/repositories"
	"github.com/talkbridge/backend/internal/server"
	"github.com/talkbridge/backend/internal/services"
	"go.uber.org/zap"
)

// @title TalkBridge API
// @version 1.0
// @description Forum backend: users, posts, announcements, comments and payments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting TalkBridge backend")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db, database.MigrationsDir()); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize collections
	users := repositories.NewCollection(db, repositories.CollectionUsers, zapLogger)
	posts := repositories.NewCollection(db, repositories.CollectionPosts, zapLogger)
	announcements := repositories.NewCollection(db, repositories.CollectionAnnouncements, zapLogger)
	paymentRecords := repositories.NewCollection(db, repositories.CollectionPayments, zapLogger)
	comments := repositories.NewCollection(db, repositories.CollectionComments, zapLogger)

	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey, zapLogger)

	// Initialize services
	userService := services.NewUserService(users, zapLogger)
	postService := services.NewPostService(posts, zapLogger)
	announcementService := services.NewAnnouncementService(announcements)
	paymentService := services.NewPaymentService(paymentRecords, gateway, zapLogger)
	commentService := services.NewCommentService(comments)

	// Initialize handlers
	h := server.Handlers{
		Auth:          handlers.NewAuthHandler(tokenGenerator, zapLogger),
		Users:         handlers.NewUserHandler(userService, zapLogger),
		Posts:         handlers.NewPostHandler(postService, zapLogger),
		Announcements: handlers.NewAnnouncementHandler(announcementService, zapLogger),
		Payments:      handlers.NewPaymentHandler(paymentService, zapLogger),
		Comments:      handlers.NewCommentHandler(commentService, zapLogger),
		Health:        handlers.NewHealthHandler(users, zapLogger),
	}

	router := server.NewRouter(cfg, h, tokenGenerator, userService, zapLogger)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
