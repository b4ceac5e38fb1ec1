// Package app provides the top-level lifecycle of the markets RPC service. It
// wires the store, the query services, the dispatcher and the gRPC server,
// then runs the server alongside a readiness probe until the context ends.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/marketsrpc/internal/config"
	"github.com/alanyoungcy/marketsrpc/internal/dispatch"
	"github.com/alanyoungcy/marketsrpc/internal/pnl"
	"github.com/alanyoungcy/marketsrpc/internal/server"
	"github.com/alanyoungcy/marketsrpc/internal/service"
)

// readinessInterval is how often the store is pinged to refresh the health
// status.
const readinessInterval = 15 * time.Second

// App is the root application object. It owns the configuration, logger, and a
// list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run listens on the configured bind address and serves until ctx is
// canceled.
func (a *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.cfg.Server.BindAddress)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", a.cfg.Server.BindAddress, err)
	}
	return a.Serve(ctx, lis)
}

// Serve wires all dependencies and serves on lis until ctx is canceled. A
// clean shutdown returns nil.
func (a *App) Serve(ctx context.Context, lis net.Listener) error {
	a.logger.InfoContext(ctx, "starting application",
		slog.String("store", a.cfg.Store.Backend),
		slog.String("log_level", a.cfg.LogLevel),
		slog.Bool("rate_limit", a.cfg.RateLimit.Enabled),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		_ = lis.Close()
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	worker := dispatch.NewWorker(a.cfg.Dispatch.QueueDepth)
	a.closers = append(a.closers, worker.Close)

	api := dispatch.New(
		service.NewMarketService(deps.Store, a.logger),
		service.NewOrderService(deps.Store, a.logger),
		service.NewTradeService(deps.Store, pnl.AverageCost{}, a.logger),
		worker,
		a.logger,
	)

	srv := server.New(server.Config{
		BindAddress:     a.cfg.Server.BindAddress,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout.Duration,
		MaxRecvMsgBytes: a.cfg.Server.MaxRecvMsgBytes,
		Reflection:      a.cfg.Server.Reflection,
	}, api, server.RateLimit{
		Limiter:  deps.Limiter,
		Requests: a.cfg.RateLimit.Requests,
		Window:   a.cfg.RateLimit.Window.Duration,

		TrustedProxies: deps.TrustedProxies,
	}, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, lis)
	})
	g.Go(func() error {
		a.watchReadiness(gctx, deps.Ping, srv)
		return nil
	})
	return g.Wait()
}

// watchReadiness marks the server serving while ping succeeds.
func (a *App) watchReadiness(ctx context.Context, ping func(context.Context) error, srv *server.Server) {
	ticker := time.NewTicker(readinessInterval)
	defer ticker.Stop()

	ready := false
	for {
		pctx, cancel := context.WithTimeout(ctx, readinessInterval/2)
		err := ping(pctx)
		cancel()

		switch {
		case err == nil && !ready:
			a.logger.InfoContext(ctx, "store ready")
		case err != nil && ctx.Err() == nil:
			a.logger.WarnContext(ctx, "store not ready", slog.String("error", err.Error()))
		}
		ready = err == nil
		srv.SetServing(ready)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down application")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
