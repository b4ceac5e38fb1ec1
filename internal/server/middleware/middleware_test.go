package middleware

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

func TestClientIP(t *testing.T) {
	viaProxy := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("10.0.0.7"), Port: 5555}})
	direct := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("198.51.100.50"), Port: 5555}})
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		ctx     context.Context
		trusted TrustedProxies
		want    string
	}{
		{"peer address", viaProxy, nil, "10.0.0.7"},
		{"forwarded for ignored without trust", metadata.NewIncomingContext(direct, metadata.Pairs("x-forwarded-for", "203.0.113.9")), trusted, "198.51.100.50"},
		{"forwarded for ignored when nothing trusted", metadata.NewIncomingContext(viaProxy, metadata.Pairs("x-forwarded-for", "203.0.113.9")), nil, "10.0.0.7"},
		{"forwarded for from trusted proxy", metadata.NewIncomingContext(viaProxy, metadata.Pairs("x-forwarded-for", "203.0.113.9, 10.0.0.1")), trusted, "203.0.113.9"},
		{"spoofed leftmost hop", metadata.NewIncomingContext(viaProxy, metadata.Pairs("x-forwarded-for", "1.2.3.4, 203.0.113.9")), trusted, "203.0.113.9"},
		{"real ip from trusted proxy", metadata.NewIncomingContext(viaProxy, metadata.Pairs("x-real-ip", " 198.51.100.2 ")), trusted, "198.51.100.2"},
		{"no peer", context.Background(), trusted, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clientIP(tt.ctx, tt.trusted); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	if _, err := ParseTrustedProxies([]string{"10.0.0.0/8", "::1", " 192.0.2.1 "}); err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	if _, err := ParseTrustedProxies([]string{"proxy.internal"}); err == nil {
		t.Error("hostname accepted as a trusted proxy")
	}
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(0)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "a", 2, time.Hour); !ok {
			t.Fatalf("request %d rejected", i)
		}
	}
	if ok, _ := l.Allow(ctx, "a", 2, time.Hour); ok {
		t.Error("third request allowed")
	}
	if ok, _ := l.Allow(ctx, "b", 2, time.Hour); !ok {
		t.Error("separate key shares a bucket")
	}
	if ok, _ := l.Allow(ctx, "c", 0, time.Hour); ok {
		t.Error("zero limit allowed a request")
	}
}

func TestLocalLimiterBoundsKeys(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewLocalLimiter(0)
	l.maxKeys = 3
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		now = now.Add(time.Second)
		l.Allow(ctx, fmt.Sprintf("peer-%d", i), 1, time.Hour)
		if n := l.Len(); n > 3 {
			t.Fatalf("after %d keys tracked = %d, want <= 3", i+1, n)
		}
	}
	if ok, _ := l.Allow(ctx, "peer-99", 1, time.Hour); ok {
		t.Error("most recent key lost its bucket")
	}
}

func TestLocalLimiterDropsRefilledBuckets(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewLocalLimiter(0)
	l.maxKeys = 2
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Allow(ctx, "a", 1, time.Second)
	l.Allow(ctx, "b", 1, time.Second)
	now = now.Add(time.Minute)
	l.Allow(ctx, "c", 1, time.Second)
	if n := l.Len(); n != 1 {
		t.Errorf("tracked = %d, want 1 after refilled buckets are dropped", n)
	}
}

func TestRequestIDInContext(t *testing.T) {
	var seen string
	handler := func(ctx context.Context, _ any) (any, error) {
		seen = RequestIDFrom(ctx)
		return nil, nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/marketsapi.MarketsApi/GetMarkets"}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-1"))
	if _, err := RequestID()(ctx, nil, info, handler); err != nil {
		t.Fatal(err)
	}
	if seen != "req-1" {
		t.Errorf("request id = %q, want req-1", seen)
	}

	if _, err := RequestID()(context.Background(), nil, info, handler); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 36 {
		t.Errorf("generated id = %q", seen)
	}
}
