package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HammerMeetNail/hangtime/internal/config"
	"github.com/HammerMeetNail/hangtime/internal/database"
	"github.com/HammerMeetNail/hangtime/internal/handlers"
	"github.com/HammerMeetNail/hangtime/internal/logging"
	"github.com/HammerMeetNail/hangtime/internal/middleware"
	"github.com/HammerMeetNail/hangtime/internal/services"
	"github.com/HammerMeetNail/hangtime/migrations"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()
	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		logger.SetLevel(logging.ParseLevel(level))
		logging.SetDefaultLevel(logging.ParseLevel(level))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting Hangtime server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigratorFromFS(cfg.Database.DSN(), migrations.FS)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	// Services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(dbAdapter, redisAdapter)
	friendService := services.NewFriendService(dbAdapter)
	interestService := services.NewInterestService(dbAdapter)
	availabilityService := services.NewAvailabilityService(dbAdapter)
	scheduleService := services.NewScheduleService(availabilityService)
	hangoutService := services.NewHangoutService(dbAdapter, friendService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService, cfg.Server.Secure)
	friendHandler := handlers.NewFriendHandler(friendService, availabilityService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, scheduleService)
	interestHandler := handlers.NewInterestHandler(interestService)
	hangoutHandler := handlers.NewHangoutHandler(hangoutService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	csrfMiddleware := middleware.NewCSRFMiddleware(cfg.Server.Secure)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	cacheControl := middleware.NewCacheControl()
	compress := middleware.NewCompress()
	requestLogger := middleware.NewRequestLogger(logger)
	authLimiter := middleware.NewAuthRateLimiter(redisDB.Client)

	requireAuth := authMiddleware.RequireAuth

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)

	// CSRF token endpoint
	mux.HandleFunc("GET /api/csrf", csrfMiddleware.GetToken)

	// Auth endpoints; credential endpoints sit behind the stricter limiter
	mux.Handle("POST /api/auth/register", authLimiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/password", requireAuth(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/auth/searchable", requireAuth(http.HandlerFunc(authHandler.UpdateSearchable)))

	// Availability endpoints
	mux.Handle("GET /api/availability", requireAuth(http.HandlerFunc(availabilityHandler.List)))
	mux.Handle("POST /api/availability/toggle", requireAuth(http.HandlerFunc(availabilityHandler.Toggle)))

	// Friend endpoints
	mux.Handle("GET /api/friends", requireAuth(http.HandlerFunc(friendHandler.List)))
	mux.Handle("GET /api/friends/search", requireAuth(http.HandlerFunc(friendHandler.Search)))
	mux.Handle("POST /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("PUT /api/friends/requests/{id}/accept", requireAuth(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("PUT /api/friends/requests/{id}/reject", requireAuth(http.HandlerFunc(friendHandler.RejectRequest)))
	mux.Handle("DELETE /api/friends/requests/{id}/cancel", requireAuth(http.HandlerFunc(friendHandler.CancelRequest)))
	mux.Handle("DELETE /api/friends/{id}", requireAuth(http.HandlerFunc(friendHandler.Remove)))
	mux.Handle("GET /api/friends/{id}/availability", requireAuth(http.HandlerFunc(friendHandler.GetFriendAvailability)))

	// Interest endpoints
	mux.Handle("GET /api/interests", requireAuth(http.HandlerFunc(interestHandler.List)))
	mux.Handle("POST /api/interests", requireAuth(http.HandlerFunc(interestHandler.Create)))
	mux.Handle("DELETE /api/interests/{id}", requireAuth(http.HandlerFunc(interestHandler.Delete)))

	// Hangout endpoints
	mux.Handle("GET /api/hangouts", requireAuth(http.HandlerFunc(hangoutHandler.List)))
	mux.Handle("POST /api/hangouts", requireAuth(http.HandlerFunc(hangoutHandler.Propose)))
	mux.Handle("POST /api/hangouts/{id}/respond", requireAuth(http.HandlerFunc(hangoutHandler.Respond)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = requestLogger.Apply(handler)
	handler = authMiddleware.Authenticate(handler)
	handler = csrfMiddleware.Protect(handler)
	handler = cacheControl.Apply(handler)
	handler = compress.Apply(handler)
	handler = securityHeaders.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
