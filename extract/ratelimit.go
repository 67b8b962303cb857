package extract

import (
	"context"
	"sync"

	"github.com/notioc/canvasdex"
	"golang.org/x/time/rate"
)

var _ canvasdex.DomainLimiter = (*RateLimiter)(nil)

// RateLimiter provides per-domain rate limiting for web discovery using
// token buckets. Each domain gets its own limiter with a burst of 1, so
// scraped course surfaces are fetched at a polite, steady pace.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewRateLimiter creates a RateLimiter with the given requests-per-second
// limit per domain.
func NewRateLimiter(rps float64) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (r *RateLimiter) Wait(ctx context.Context, domain string) error {
	r.mu.Lock()
	limiter, ok := r.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(r.rps), 1)
		r.limiters[domain] = limiter
	}
	r.mu.Unlock()

	return limiter.Wait(ctx)
}
