package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanyoungcy/marketsrpc/internal/cache/redis"
	"github.com/alanyoungcy/marketsrpc/internal/config"
	"github.com/alanyoungcy/marketsrpc/internal/query"
	"github.com/alanyoungcy/marketsrpc/internal/server/middleware"
	"github.com/alanyoungcy/marketsrpc/internal/store/memory"
	"github.com/alanyoungcy/marketsrpc/internal/store/postgres"
)

// Dependencies bundles the backends the server needs. It is built by Wire and
// torn down by the cleanup function Wire returns.
type Dependencies struct {
	Store query.Store

	// Ping reports whether Store can serve queries. It drives the health
	// status.
	Ping func(ctx context.Context) error

	// Limiter is nil when rate limiting is disabled.
	Limiter middleware.Limiter

	TrustedProxies middleware.TrustedProxies
}

// Wire constructs the configured store and rate limiter and returns them
// together with a cleanup function that releases them in reverse order.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		s := memory.New()
		if err := s.LoadFile(cfg.Store.FixturePath); err != nil {
			return nil, nil, fmt.Errorf("wire: memory store: %w", err)
		}
		deps.Store = s
		deps.Ping = func(context.Context) error { return nil }
		logger.Info("wire: serving fixture", slog.String("path", cfg.Store.FixturePath))

	default:
		pg, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pg.Close)

		if cfg.Postgres.RunMigrations {
			if err := pg.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}
		deps.Store = pg
		deps.Ping = pg.Ping
	}

	if cfg.RateLimit.Enabled {
		trusted, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: rate limit: %w", err)
		}
		deps.TrustedProxies = trusted

		switch cfg.RateLimit.Backend {
		case config.LimiterRedis:
			rc, err := redis.New(ctx, redis.ClientConfig{
				Addr:       cfg.Redis.Addr,
				Password:   cfg.Redis.Password,
				DB:         cfg.Redis.DB,
				PoolSize:   cfg.Redis.PoolSize,
				MaxRetries: cfg.Redis.MaxRetries,
				TLSEnabled: cfg.Redis.TLSEnabled,
			})
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: redis: %w", err)
			}
			closers = append(closers, func() { _ = rc.Close() })
			deps.Limiter = redis.NewRateLimiter(rc, cfg.Redis.KeyPrefix)
		default:
			deps.Limiter = middleware.NewLocalLimiter(cfg.RateLimit.Burst)
		}
	}

	return deps, cleanup, nil
}
