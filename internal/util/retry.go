// ABOUTME: Retry utilities for embedding API calls with exponential backoff
// ABOUTME: Backoff waits honour context cancellation so query timeouts stay bounded
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxBackoff caps a single backoff wait
const MaxBackoff = 30 * time.Second

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > MaxBackoff || backoff <= 0 {
		backoff = MaxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2+1)) - backoff/4
	return backoff + jitter
}

// Backoff sleeps for the backoff of the given attempt or until ctx is done
func Backoff(ctx context.Context, baseDelay time.Duration, attempt int) error {
	d := CalculateBackoff(baseDelay, attempt)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
