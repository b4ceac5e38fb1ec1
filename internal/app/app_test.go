package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/alanyoungcy/marketsrpc/internal/client"
	"github.com/alanyoungcy/marketsrpc/internal/config"
	"github.com/alanyoungcy/marketsrpc/internal/server/middleware"
	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

func memoryConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Store.Backend = config.BackendMemory
	cfg.Store.FixturePath = "../../testdata/markets.json"
	cfg.Server.ShutdownTimeout.Duration = time.Second
	return &cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWireMemory(t *testing.T) {
	cfg := memoryConfig()
	cfg.RateLimit.Enabled = true

	deps, cleanup, err := Wire(context.Background(), cfg, discard())
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	defer cleanup()

	if err := deps.Ping(context.Background()); err != nil {
		t.Errorf("memory ping: %v", err)
	}
	if _, ok := deps.Limiter.(*middleware.LocalLimiter); !ok {
		t.Errorf("limiter = %T, want *middleware.LocalLimiter", deps.Limiter)
	}
}

func TestWireMissingFixture(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.FixturePath = "does-not-exist.json"
	if _, _, err := Wire(context.Background(), cfg, discard()); err == nil || !strings.Contains(err.Error(), "memory store") {
		t.Fatalf("err = %v, want memory store error", err)
	}
}

func TestServeEndToEnd(t *testing.T) {
	a := New(memoryConfig(), discard())
	defer a.Close()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hc := healthpb.NewHealthClient(conn)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: wire.ServiceName})
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("never became ready: %v %v", resp.GetStatus(), err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	resp, err := client.New(conn).GetMarkets(context.Background(), &wire.GetMarketsRequest{
		Universe: "0x000000000000000000000000000000000000000b",
	})
	if err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if len(resp.MarketAddresses) != 3 {
		t.Errorf("markets = %v, want 3", resp.MarketAddresses)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
