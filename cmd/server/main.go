package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/api"
	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/logger"
	"github.com/Rrens/shopchat/internal/mailer"
	"github.com/Rrens/shopchat/internal/observability"
	"github.com/Rrens/shopchat/internal/security"
	"github.com/Rrens/shopchat/internal/service"
	"github.com/Rrens/shopchat/internal/session"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logCloser, err := logger.Setup(cfg.Logging, os.Getenv("ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("sessions", cfg.Session.Backend).
		Str("reply", cfg.Reply.Strategy).
		Msg("Starting shop chat server")

	ctx := context.Background()

	// Initialize durable stores
	stores, err := openStores(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer stores.close()

	// Initialize Redis when a component needs it
	redisClient, err := openRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	info := shopinfo.Load(cfg.Shop.InfoPath)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace, nil)
	}

	sessions := session.NewManager(newSessionStore(cfg, redisClient), stores.conversations)
	producer := newProducer(cfg, info)
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	if cfg.Auth.AdminPasswordHash != "" && cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("auth.jwt_secret is required when an admin password is configured")
	}

	services := api.Services{
		Chat: service.NewChatService(
			sessions,
			producer,
			stores.requests,
			security.NewMessageSanitizer(cfg.Security.MaxMessageLength),
			metrics,
		),
		Contact:  service.NewContactService(mailer.NewSMTPSender(cfg.SMTP), cfg.SMTP.From, cfg.SMTP.To, metrics),
		Requests: service.NewRequestService(stores.requests),
		Admin:    service.NewAdminService(cfg.Auth.AdminPasswordHash, jwtManager),
		JWT:      jwtManager,
		Ready:    readiness(stores, redisClient),
		Metrics:  metrics,
	}
	if redisClient != nil && cfg.Security.RateLimit.Enabled {
		services.Limiter = newRedisLimiter(cfg, redisClient)
	}

	// Initialize router
	router := api.NewRouter(cfg, services)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
