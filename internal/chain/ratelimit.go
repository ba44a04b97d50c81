// Package chain provides shared plumbing for outbound network calls:
// per-endpoint rate limiting in front of the asset index client. The
// Ethereum RPC client stays unlimited; the receipt watcher's poll
// interval already paces it.
package chain

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter applies a token-bucket limit per endpoint so that a burst
// of asset index page fetches cannot trip a provider's limits.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter allowing ratePerSecond requests
// with the given burst size per endpoint.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
	}
}

// DefaultRateLimiter returns a limiter tuned for public providers:
// 4 requests/second with a burst of 8.
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(4, 8)
}

// Allow reports whether a request to the endpoint may proceed now.
func (r *RateLimiter) Allow(endpoint string) bool {
	return r.getLimiter(endpoint).Allow()
}

// Wait blocks until a request to the endpoint is allowed or the context
// is canceled.
func (r *RateLimiter) Wait(ctx context.Context, endpoint string) error {
	return r.getLimiter(endpoint).Wait(ctx)
}

func (r *RateLimiter) getLimiter(endpoint string) *rate.Limiter {
	r.mu.RLock()
	limiter, ok := r.limiters[endpoint]
	r.mu.RUnlock()

	if ok {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock
	if limiter, ok = r.limiters[endpoint]; ok {
		return limiter
	}

	limiter = rate.NewLimiter(r.limit, r.burst)
	r.limiters[endpoint] = limiter
	return limiter
}
