package wait

import (
	"context"
	"time"
)

// MaxBackoff caps the delay between two attempts.
const MaxBackoff = time.Minute

// RetryWithBackoff re-runs op until it succeeds, making at most
// maxRetries+1 attempts. The delay before retry n (0-based) is
// initialDelay * 2^n, capped at MaxBackoff. When attempts run out the last
// error is returned unchanged.
func RetryWithBackoff(ctx context.Context, op func(ctx context.Context) error, maxRetries int, initialDelay time.Duration) error {
	_, err := Retry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, maxRetries, initialDelay)
	return err
}

// Retry is RetryWithBackoff for operations that produce a value.
func Retry[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxRetries int, initialDelay time.Duration) (T, error) {
	var zero T
	var lastErr error

	maxRetries = max(maxRetries, 0)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt < maxRetries {
			if err := sleep(ctx, backoff(initialDelay, attempt)); err != nil {
				return zero, err
			}
		}
	}
	return zero, lastErr
}

// backoff returns initial * 2^attempt, saturating at MaxBackoff instead of
// overflowing.
func backoff(initial time.Duration, attempt int) time.Duration {
	if initial <= 0 {
		return 0
	}
	if initial >= MaxBackoff || attempt >= 62 || initial > MaxBackoff>>attempt {
		return MaxBackoff
	}
	return initial << attempt
}
