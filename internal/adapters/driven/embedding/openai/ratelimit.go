package openai

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default throttle for embedding requests.
const (
	DefaultRequestsPerSecond = 3.0
	DefaultBurstSize         = 3
	defaultRetryAfter        = 20 * time.Second
)

// rateLimiter throttles embedding requests with a token bucket and honours
// Retry-After backoff from 429 responses.
type rateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

func newRateLimiter(requestsPerSecond float64, burst int) *rateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurstSize
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may be sent.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return r.limiter.Wait(ctx)
}

// backoff delays subsequent requests after a 429.
// retryAfter is the raw Retry-After header value in seconds.
func (r *rateLimiter) backoff(retryAfter string) time.Duration {
	d := defaultRetryAfter
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d = time.Duration(secs) * time.Second
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(d)
	return d
}
