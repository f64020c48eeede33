package httputil

import (
	"context"
	"time"

	"github.com/matzehuels/launchdeck/pkg/observability"
)

// Default retry policy.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Retry executes fn up to maxAttempts times with linear backoff.
// After attempt n fails it waits baseDelay*n. A maxAttempts below 1 is
// treated as a single attempt. Returns nil on the first success, the last
// error unchanged if all attempts fail, or ctx.Err() if cancelled while
// waiting.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	maxAttempts = max(maxAttempts, 1)
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay * time.Duration(attempt)
		observability.Retry().OnRetry(ctx, attempt, delay, lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// Do is [Retry] for operations that produce a value. The value of the
// successful attempt is returned; on failure the zero value is returned.
func Do[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() (T, error)) (T, error) {
	var out T
	err := Retry(ctx, maxAttempts, baseDelay, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// RetryWithBackoff is a convenience wrapper around [Retry] with the default
// policy: 3 attempts, waiting 1s and then 2s.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}
