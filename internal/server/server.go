// Package server hosts the MarketsApi gRPC service with health checking,
// reflection and the request interceptor chain.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/alanyoungcy/marketsrpc/internal/dispatch"
	"github.com/alanyoungcy/marketsrpc/internal/server/middleware"
	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

// Config holds the gRPC server configuration.
type Config struct {
	BindAddress     string
	ShutdownTimeout time.Duration
	MaxRecvMsgBytes int
	Reflection      bool
}

// RateLimit configures the rate-limit interceptor. A nil Limiter disables it.
// Only calls from TrustedProxies may name the client through forwarding
// metadata.
type RateLimit struct {
	Limiter        middleware.Limiter
	Requests       int
	Window         time.Duration
	TrustedProxies middleware.TrustedProxies
}

// Server is the gRPC server.
type Server struct {
	cfg    Config
	grpc   *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// New builds a Server serving api.
func New(cfg Config, api dispatch.MarketsAPIServer, rl RateLimit, logger *slog.Logger) *Server {
	logger = logger.With(slog.String("component", "server"))

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	}
	if rl.Limiter != nil {
		interceptors = append(interceptors, middleware.RateLimit(rl.Limiter, rl.Requests, rl.Window, rl.TrustedProxies, logger))
	}

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
	if cfg.MaxRecvMsgBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.MaxRecvMsgBytes))
	}
	gs := grpc.NewServer(opts...)
	dispatch.Register(gs, api)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(wire.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	if cfg.Reflection {
		reflection.Register(gs)
	}

	return &Server{cfg: cfg, grpc: gs, health: hs, logger: logger}
}

// SetServing flips the health status of the server and the markets service.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(wire.ServiceName, st)
}

// ListenAndServe binds cfg.BindAddress and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.BindAddress)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.BindAddress, err)
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is canceled, then stops
// gracefully. Calls still running after the shutdown timeout are cut off.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.InfoContext(ctx, "server: starting", slog.String("addr", lis.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(lis) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server: shutting down")
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	timer := time.NewTimer(s.cfg.ShutdownTimeout)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		s.logger.Warn("server: shutdown timeout, stopping in-flight calls",
			slog.Duration("timeout", s.cfg.ShutdownTimeout),
		)
		s.grpc.Stop()
		<-stopped
	}
	return nil
}
