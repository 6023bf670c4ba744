package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/api/handler"
	customMiddleware "github.com/Rrens/shopchat/internal/api/middleware"
	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/observability"
	"github.com/Rrens/shopchat/internal/security"
	"github.com/Rrens/shopchat/internal/service"
)

// Services are the collaborators the router exposes over HTTP
type Services struct {
	Chat     *service.ChatService
	Contact  *service.ContactService
	Requests *service.RequestService
	Admin    *service.AdminService
	JWT      *security.JWTManager
	// Limiter backs rate limiting when security.rate_limit.enabled is set.
	// A nil Limiter falls back to an in-process limiter.
	Limiter customMiddleware.Limiter
	Ready   map[string]handler.Pinger
	Metrics *observability.Metrics
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, svc Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger(svc.Metrics))
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	chatHandler := handler.NewChatHandler(svc.Chat)
	contactHandler := handler.NewContactHandler(svc.Contact)
	requestHandler := handler.NewRequestHandler(svc.Requests)

	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(svc.Ready))
	r.Get("/quote/categories", handler.QuoteCategories)

	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, svc.Metrics.Handler())
	}

	// Widget routes
	r.Group(func(r chi.Router) {
		if cfg.Security.RateLimit.Enabled {
			limiter := svc.Limiter
			if limiter == nil {
				limiter = customMiddleware.NewLocalLimiter(
					cfg.Security.RateLimit.RequestsPerMinute,
					cfg.Security.RateLimit.Burst,
				)
			}
			r.Use(customMiddleware.NewRateLimitMiddleware(limiter).Limit)
		}

		r.Post("/chat", chatHandler.Chat)
		r.Post("/set-mode", chatHandler.SetMode)
		r.Post("/contact", contactHandler.Send)
		r.Get("/sessions/{sessionID}", chatHandler.Session)
	})

	// Back-office routes
	if svc.Admin != nil && svc.Admin.Enabled() && svc.JWT != nil {
		adminHandler := handler.NewAdminHandler(svc.Admin)
		authMiddleware := customMiddleware.NewAuthMiddleware(svc.JWT)

		r.Post("/admin/login", adminHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/solicitudes", requestHandler.List)
		})
	} else {
		log.Warn().Msg("admin password not configured, /solicitudes is public")
		r.Get("/solicitudes", requestHandler.List)
	}

	return r
}
