package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// TrustedProxies lists the networks whose forwarding metadata is believed.
// Calls arriving from anywhere else are keyed by their transport address.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies parses CIDRs or bare addresses.
func ParseTrustedProxies(specs []string) (TrustedProxies, error) {
	out := make(TrustedProxies, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if p, err := netip.ParsePrefix(s); err == nil {
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("middleware: trusted proxy %q: not an address or CIDR", s)
		}
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (t TrustedProxies) trusts(host string) bool {
	a, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// RateLimit returns an interceptor limiting each client IP to limit calls
// per window. Limiter errors let the call through.
func RateLimit(limiter Limiter, limit int, window time.Duration, trusted TrustedProxies, logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		key := "grpc:" + clientIP(ctx, trusted)
		allowed, err := limiter.Allow(ctx, key, limit, window)
		if err != nil {
			logger.WarnContext(ctx, "rate limiter unavailable, allowing request",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return handler(ctx, req)
		}
		if !allowed {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded: %d requests per %s", limit, window)
		}
		return handler(ctx, req)
	}
}

// clientIP returns the transport peer address. When the peer is a trusted
// proxy, the nearest untrusted hop of x-forwarded-for wins, then x-real-ip.
func clientIP(ctx context.Context, trusted TrustedProxies) string {
	host := peerHost(ctx)
	if !trusted.trusts(host) {
		return host
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return host
	}
	if vs := md.Get("x-forwarded-for"); len(vs) > 0 {
		hops := strings.Split(strings.Join(vs, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !trusted.trusts(hop) {
				return hop
			}
		}
	}
	if vs := md.Get("x-real-ip"); len(vs) > 0 && strings.TrimSpace(vs[0]) != "" {
		return strings.TrimSpace(vs[0])
	}
	return host
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
