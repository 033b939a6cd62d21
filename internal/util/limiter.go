package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter to pace how often an operation may start (the
// analyzer uses it for file-content reads). It limits a rate, not how many
// operations are in flight at once; the batch size bounds that.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a token bucket limiter: r tokens per second, burst b.
func NewLimiter(r float64, b int) *Limiter {
	return &Limiter{inner: rate.NewLimiter(rate.Limit(r), b)}
}

// Allow reports whether an event with weight n may happen now.
func (l *Limiter) Allow(n int) bool {
	return l.inner.AllowN(time.Now(), n)
}

// Wait blocks until n tokens are available or ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	return l.inner.WaitN(ctx, n)
}
