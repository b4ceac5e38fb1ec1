package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/alanyoungcy/marketsrpc/internal/client"
	"github.com/alanyoungcy/marketsrpc/internal/dispatch"
	"github.com/alanyoungcy/marketsrpc/internal/server/middleware"
	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

// fakeAPI answers GetMarkets and panics when asked for universe "panic".
// Other methods are left unimplemented.
type fakeAPI struct {
	dispatch.MarketsAPIServer
}

func (fakeAPI) GetMarkets(_ context.Context, r *wire.GetMarketsRequest) (*wire.GetMarketsResponse, error) {
	if r.Universe == "panic" {
		panic("boom")
	}
	return &wire.GetMarketsResponse{MarketAddresses: []string{"0x01"}}, nil
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

type harness struct {
	srv    *Server
	conn   *grpc.ClientConn
	client *client.Client
	done   chan error
	cancel context.CancelFunc
}

func start(t *testing.T, rl RateLimit) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(Config{ShutdownTimeout: time.Second, Reflection: true}, fakeAPI{}, rl, logger)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	h := &harness{srv: srv, conn: conn, client: client.New(conn), done: done, cancel: cancel}
	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return h
}

func TestHealthFollowsServing(t *testing.T) {
	h := start(t, RateLimit{})
	hc := healthpb.NewHealthClient(h.conn)
	ctx := context.Background()

	resp, err := hc.Check(ctx, &healthpb.HealthCheckRequest{Service: wire.ServiceName})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status before ping = %v", resp.Status)
	}

	h.srv.SetServing(true)
	resp, err = hc.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status after ping = %v", resp.Status)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := start(t, RateLimit{})

	var md metadata.MD
	if _, err := h.client.GetMarkets(context.Background(), &wire.GetMarketsRequest{}, grpc.Header(&md)); err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if ids := md.Get(middleware.RequestIDHeader); len(ids) != 1 || len(ids[0]) != 36 {
		t.Errorf("generated request id = %v", ids)
	}

	ctx := metadata.AppendToOutgoingContext(context.Background(), middleware.RequestIDHeader, "abc-123")
	if _, err := h.client.GetMarkets(ctx, &wire.GetMarketsRequest{}, grpc.Header(&md)); err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if ids := md.Get(middleware.RequestIDHeader); len(ids) != 1 || ids[0] != "abc-123" {
		t.Errorf("echoed request id = %v", ids)
	}
}

func TestPanicBecomesInternal(t *testing.T) {
	h := start(t, RateLimit{})
	_, err := h.client.GetMarkets(context.Background(), &wire.GetMarketsRequest{Universe: "panic"})
	if status.Code(err) != codes.Internal {
		t.Fatalf("code = %v, want Internal", status.Code(err))
	}
	if _, err := h.client.GetMarkets(context.Background(), &wire.GetMarketsRequest{}); err != nil {
		t.Errorf("server unusable after panic: %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	h := start(t, RateLimit{Limiter: middleware.NewLocalLimiter(1), Requests: 1, Window: time.Hour})
	ctx := context.Background()
	if _, err := h.client.GetMarkets(ctx, &wire.GetMarketsRequest{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	_, err := h.client.GetMarkets(ctx, &wire.GetMarketsRequest{})
	if status.Code(err) != codes.ResourceExhausted {
		t.Errorf("second call code = %v, want ResourceExhausted", status.Code(err))
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := start(t, RateLimit{Limiter: brokenLimiter{}, Requests: 1, Window: time.Second})
	if _, err := h.client.GetMarkets(context.Background(), &wire.GetMarketsRequest{}); err != nil {
		t.Errorf("call rejected while limiter is down: %v", err)
	}
}

func TestUnimplementedMethod(t *testing.T) {
	h := start(t, RateLimit{})
	_, err := h.client.GetOrders(context.Background(), &wire.GetOrdersRequest{})
	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	h := start(t, RateLimit{})
	h.cancel()
	select {
	case err := <-h.done:
		if err != nil {
			t.Errorf("Serve = %v", err)
		}
		h.done <- nil
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
