package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/hdscrape"
	"golang.org/x/time/rate"
)

var _ hdscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter that allows n requests per
// interval to each domain, evenly spaced with a burst of 1.
// A non-positive n or interval disables limiting.
func NewDomainLimiter(n int, per time.Duration) *DomainLimiter {
	limit := rate.Inf
	if n > 0 && per > 0 {
		limit = rate.Every(per / time.Duration(n))
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
