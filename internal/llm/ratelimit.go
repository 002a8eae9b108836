package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// newRateLimiter spreads requestsPerMinute calls evenly over each minute and
// allows a burst of one minute's worth after a quiet period.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRateLimit
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return rate.NewLimiter(rate.Every(every), requestsPerMinute)
}

// waitTurn blocks until the provider may be called. It fails fast when the
// wait would outlast ctx.
func waitTurn(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
