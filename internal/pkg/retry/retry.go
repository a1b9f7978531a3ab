// Package retry provides an injectable retry policy for flaky external
// collaborators. The policy is data, not loop state: callers configure the
// attempt count and backoff schedule once and pass the policy around.
package retry

import (
	"context"
	"fmt"
	"time"
)

// BackoffFunc returns the delay to wait after a failed attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// Linear returns a backoff growing by step per attempt: step, 2*step, ...
func Linear(step time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Constant returns the same delay for every attempt.
func Constant(delay time.Duration) BackoffFunc {
	return func(int) time.Duration {
		return delay
	}
}

// Policy bounds the retry behaviour of an operation.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

// Do runs fn up to MaxAttempts times, waiting per the backoff schedule
// between attempts. Context cancellation aborts the wait.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("exceeded %d attempts: %w", attempts, err)
}
