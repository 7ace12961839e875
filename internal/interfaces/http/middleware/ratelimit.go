package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/infrastructure/ratelimit"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/utils"
)

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	limiter ratelimit.Limiter
	scope   string
	window  time.Duration
	logger  logger.Interface
}

// NewRateLimiter returns a limiter for one route group. scope keeps the
// counters of different groups apart; window is advertised in Retry-After.
func NewRateLimiter(limiter ratelimit.Limiter, scope string, window time.Duration, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		window:  window,
		logger:  log,
	}
}

func (rl *RateLimiter) retryAfter() string {
	secs := int(rl.window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// Limit fails open: when the backing store errors the request goes through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), rl.scope+":"+c.ClientIP())
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", rl.retryAfter())
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
