package openai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Backoff(t *testing.T) {
	r := newRateLimiter(100, 1)

	assert.Equal(t, 2*time.Second, r.backoff("2"))
	assert.Equal(t, defaultRetryAfter, r.backoff("soon"))
	assert.Equal(t, time.Duration(0), r.backoff("0"))
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := newRateLimiter(100, 1)
	r.backoff("60")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}

func TestRateLimiter_Defaults(t *testing.T) {
	r := newRateLimiter(0, 0)
	assert.Equal(t, DefaultBurstSize, r.limiter.Burst())
}
