package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/api/handler"
	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/llm"
	"github.com/Rrens/shopchat/internal/llm/anthropic"
	"github.com/Rrens/shopchat/internal/llm/gemini"
	"github.com/Rrens/shopchat/internal/llm/ollama"
	"github.com/Rrens/shopchat/internal/llm/openai"
	"github.com/Rrens/shopchat/internal/reply"
	"github.com/Rrens/shopchat/internal/repository/migrations"
	"github.com/Rrens/shopchat/internal/repository/mongo"
	"github.com/Rrens/shopchat/internal/repository/postgres"
	"github.com/Rrens/shopchat/internal/repository/redis"
	"github.com/Rrens/shopchat/internal/repository/sqlstore"
	"github.com/Rrens/shopchat/internal/session"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

// stores bundles the durable repositories selected by database.driver
type stores struct {
	requests      domain.RequestRepository
	conversations domain.ConversationRepository
	pinger        handler.Pinger
	close         func()
}

func openStores(ctx context.Context, cfg config.DatabaseConfig) (*stores, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := migrate(cfg); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			requests:      postgres.NewRequestRepository(db.Pool),
			conversations: postgres.NewConversationRepository(db.Pool),
			pinger:        db,
			close:         db.Close,
		}, nil

	case "sqlite", "mysql":
		db, err := sqlstore.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := migrate(cfg); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			requests:      sqlstore.NewRequestRepository(db),
			conversations: sqlstore.NewConversationRepository(db),
			pinger:        db,
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close database")
				}
			},
		}, nil

	case "mongo":
		db, err := mongo.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			requests:      mongo.NewRequestRepository(db),
			conversations: mongo.NewConversationRepository(db),
			pinger:        db,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := db.Close(closeCtx); err != nil {
					log.Warn().Err(err).Msg("failed to disconnect mongo")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func migrate(cfg config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		return nil
	}
	if err := migrations.Up(cfg.Driver, cfg.MigrationURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Session.Backend != "redis" && !cfg.Security.RateLimit.Enabled {
		return nil, nil
	}
	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		if cfg.Session.Backend == "redis" {
			return nil, err
		}
		// Rate limiting alone falls back to the in-process limiter
		log.Warn().Err(err).Msg("Redis unavailable, using local rate limiter")
		return nil, nil
	}
	return client, nil
}

func newSessionStore(cfg *config.Config, client *redis.Client) session.Store {
	if cfg.Session.Backend == "redis" && client != nil {
		return redis.NewSessionStore(client, cfg.Session.MemoryLimit, cfg.Session.DefaultMode, cfg.Session.TTL)
	}
	return session.NewMemoryStore(cfg.Session.MemoryLimit, cfg.Session.DefaultMode)
}

func newRedisLimiter(cfg *config.Config, client *redis.Client) *redis.RateLimiter {
	return redis.NewRateLimiter(client, cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst)
}

func readiness(s *stores, client *redis.Client) map[string]handler.Pinger {
	pingers := map[string]handler.Pinger{"database": s.pinger}
	if client != nil {
		pingers["redis"] = client
	}
	return pingers
}

// newLLMRouter registers every provider that has credentials
func newLLMRouter(cfg config.LLMConfig) *llm.Router {
	router := llm.NewRouter(cfg.DefaultProvider)

	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.DefaultProvider)

	if cfg.Ollama.Host != "" {
		log.Info().Str("host", cfg.Ollama.Host).Msg("Registering Ollama provider")
		router.RegisterProvider(ollama.NewProvider(cfg.Ollama, cfg.Timeout))
	}
	if cfg.OpenAI.APIKey != "" {
		router.RegisterProvider(openai.NewProvider("openai", cfg.OpenAI, cfg.Timeout))
	}
	if cfg.Groq.APIKey != "" {
		router.RegisterProvider(openai.NewProvider("groq", cfg.Groq, cfg.Timeout))
	}
	if cfg.DeepSeek.APIKey != "" {
		router.RegisterProvider(openai.NewProvider("deepseek", cfg.DeepSeek, cfg.Timeout))
	}
	if cfg.Anthropic.APIKey != "" {
		router.RegisterProvider(anthropic.NewProvider(cfg.Anthropic, cfg.Timeout))
	}
	if cfg.Gemini.APIKey != "" {
		router.RegisterProvider(gemini.NewProvider(cfg.Gemini))
	}

	if len(router.ListProviders()) == 0 {
		log.Warn().Msg("No LLM provider has credentials; completion replies will be degraded")
	}
	return router
}

// checkReplyModel warns at startup when the reply provider or model is
// unknown; completions with them end in degraded replies.
func checkReplyModel(router *llm.Router, provider, model string) {
	ok, err := router.HasModel(provider, model)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider).Msg("reply provider unavailable")
		return
	}

	p, _ := router.GetProvider(provider)
	if !ok {
		log.Warn().
			Str("provider", p.Name()).
			Str("model", model).
			Strs("available_models", p.AvailableModels()).
			Msg("reply model is not in the provider catalog")
		return
	}
	log.Info().
		Str("provider", p.Name()).
		Str("default_model", p.DefaultModel()).
		Strs("available_models", p.AvailableModels()).
		Msg("reply provider ready")
}

func newProducer(cfg *config.Config, info shopinfo.Info) reply.Producer {
	if cfg.Reply.Strategy != "llm" {
		return reply.NewLocalProducer(info)
	}
	router := newLLMRouter(cfg.LLM)
	checkReplyModel(router, cfg.Reply.Provider, cfg.Reply.Model)

	return reply.NewCompletionProducer(router, info, reply.CompletionSettings{
		Provider:    cfg.Reply.Provider,
		Model:       cfg.Reply.Model,
		MaxTokens:   cfg.Reply.MaxTokens,
		Temperature: cfg.Reply.Temperature,
	})
}
