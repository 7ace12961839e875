package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more request for key fits the configured budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Requests int
	Window   time.Duration
}
