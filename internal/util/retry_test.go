// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter and context-aware waiting
package util

import (
	"context"
	"testing"
	"time"
)

func TestCalculateBackoff_NonPositiveAttempt(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if got := CalculateBackoff(time.Second, attempt); got != 0 {
			t.Errorf("attempt %d: expected 0, got %v", attempt, got)
		}
	}
}

func TestCalculateBackoff_ZeroBaseDelay(t *testing.T) {
	if got := CalculateBackoff(0, 3); got != 0 {
		t.Errorf("expected 0 for zero base delay, got %v", got)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase*5/4 + time.Nanosecond

		result := CalculateBackoff(baseDelay, attempt)
		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	maxAllowed := MaxBackoff*5/4 + time.Nanosecond

	for _, attempt := range []int{10, 100} {
		result := CalculateBackoff(time.Second, attempt)
		if result > maxAllowed {
			t.Errorf("attempt %d: expected backoff <= %v, got %v", attempt, maxAllowed, result)
		}
		if result < 0 {
			t.Errorf("attempt %d: backoff should never be negative", attempt)
		}
	}
}

func TestBackoff_ReturnsAfterDelay(t *testing.T) {
	start := time.Now()
	if err := Backoff(context.Background(), time.Millisecond, 1); err != nil {
		t.Fatalf("Backoff() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Backoff() took %v, expected a few milliseconds", elapsed)
	}
}

func TestBackoff_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Backoff(ctx, time.Second, 5)
	if err == nil {
		t.Fatal("expected context error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Backoff() ignored cancellation, waited %v", elapsed)
	}
}
