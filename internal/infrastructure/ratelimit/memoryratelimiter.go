package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an unused per-key limiter is kept.
const idleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket per key, used when Redis is disabled.
// The bucket refills Requests tokens per Window with a burst of Requests.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(float64(cfg.Requests) / window.Seconds()),
		burst:   cfg.Requests,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now

	if len(l.entries) > 1024 {
		l.evictLocked(now)
	}

	return e.limiter.AllowN(now, 1), nil
}

func (l *MemoryLimiter) evictLocked(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(l.entries, k)
		}
	}
}
