// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orgpilot/orgpilot/internal/api"
	"github.com/orgpilot/orgpilot/internal/collect"
	"github.com/orgpilot/orgpilot/internal/config"
	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/factory"
	"github.com/orgpilot/orgpilot/internal/llm/huggingface"
	"github.com/orgpilot/orgpilot/internal/llm/ollama"
	"github.com/orgpilot/orgpilot/internal/metrics"
	"github.com/orgpilot/orgpilot/internal/storage/profile"
	"go.uber.org/zap"
)

// App wires configuration, storage, the LLM provider, and the HTTP server
// into a runnable service.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    profile.Store
	provider llm.Provider
	registry *metrics.Registry
	collect  *collect.Service
	server   *api.Server

	redisClient *redis.Client
}

// New builds the application from configuration. Provider selection happens
// here: a pinned provider is honored unconditionally, otherwise the local
// runtime is probed and the cloud backend used when it does not answer.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{cfg: cfg, logger: logger}

	if err := a.setupStorage(ctx); err != nil {
		return nil, err
	}

	a.provider = factory.WithFallback(factory.BestAvailable(ctx, cfg.LLM), cfg.LLM)
	logger.Info("selected LLM provider", zap.String("provider", a.provider.Name()))

	if cfg.Metrics.Enabled {
		a.registry = metrics.NewRegistry()
	}

	a.collect = collect.NewService(a.store, a.provider, collect.Config{
		MaxAttempts:    cfg.Collect.MaxAttempts,
		RequestTimeout: cfg.Collect.RequestTimeout,
		SessionTTL:     cfg.Collect.SessionTTL,
		MaxSessions:    cfg.Collect.MaxSessions,
	}, logger, a.registry)

	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		JWTSecret:   cfg.Auth.JWTSecret,
		MetricsPath: cfg.Metrics.Path,
	}, api.Deps{
		Collect: a.collect,
		Store:   a.store,
		Cloud:   huggingface.New(cfg.LLM.HuggingFace.APIKey, cfg.LLM.HuggingFace.Model, cfg.LLM.HuggingFace.Endpoint),
		Local:   ollama.New(cfg.LLM.Ollama.Endpoint, cfg.LLM.Ollama.Model),
		Active:  a.provider.Name(),
		Metrics: a.registry,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	a.server = server

	return a, nil
}

func (a *App) setupStorage(ctx context.Context) error {
	switch a.cfg.Storage.Type {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Storage.Redis.Addr,
			Password: a.cfg.Storage.Redis.Password,
			DB:       a.cfg.Storage.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return core.WrapError(core.ErrStoreFailed, err)
		}
		a.redisClient = client
		a.store = profile.NewRedisStore(client)
		a.logger.Info("using redis storage", zap.String("addr", a.cfg.Storage.Redis.Addr))
	default:
		a.store = profile.NewMemoryStore()
		a.logger.Info("using in-memory storage")
	}
	return nil
}

// Store exposes the profile store.
func (a *App) Store() profile.Store {
	return a.store
}

// Provider exposes the selected LLM provider.
func (a *App) Provider() llm.Provider {
	return a.provider
}

// Collect exposes the collection service.
func (a *App) Collect() *collect.Service {
	return a.collect
}

// Start runs the HTTP server until Shutdown is called.
func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops the server and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.redisClient != nil {
		if cerr := a.redisClient.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
