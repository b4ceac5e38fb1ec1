package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxKeys caps the number of buckets a LocalLimiter tracks.
const DefaultMaxKeys = 10000

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is an in-process token bucket per key. Buckets refill at
// limit per window and hold up to burst tokens. At most maxKeys buckets are
// kept: refilled buckets are dropped first, then the least recently used.
type LocalLimiter struct {
	burst   int
	maxKeys int
	now     func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLocalLimiter creates a LocalLimiter tracking up to DefaultMaxKeys keys.
// A burst below 1 defaults to the limit passed to Allow.
func NewLocalLimiter(burst int) *LocalLimiter {
	return &LocalLimiter{
		burst:   burst,
		maxKeys: DefaultMaxKeys,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket. It never fails.
func (l *LocalLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.evict(now)
		}
		burst := l.burst
		if burst < 1 {
			burst = limit
		}
		b = &bucket{lim: rate.NewLimiter(rate.Every(window/time.Duration(limit)), burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1), nil
}

// evict drops every bucket that has refilled completely, since a new bucket
// for the same key would behave identically. If none has, the least recently
// used bucket goes. Callers hold l.mu.
func (l *LocalLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, b := range l.buckets {
		if b.lim.TokensAt(now) >= float64(b.lim.Burst()) {
			delete(l.buckets, k)
			continue
		}
		if oldestKey == "" || b.lastSeen.Before(oldest) {
			oldestKey, oldest = k, b.lastSeen
		}
	}
	if len(l.buckets) >= l.maxKeys && oldestKey != "" {
		delete(l.buckets, oldestKey)
	}
}

// Len reports how many keys are tracked.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
