package util

import (
	"context"
	"errors"
	"time"
)

// Backoff returns the delay before retry attempt i (0-based): 1s, 2s, 4s, 8s, ...
func Backoff(attempt int) time.Duration {
	return time.Second << attempt
}

// RetryWithBackoff calls fn up to maxTries times, sleeping an exponentially
// growing delay between attempts. It stops early when ctx is done or fn
// returns a context error. Returns the last error if all attempts fail.
func RetryWithBackoff[T any](ctx context.Context, maxTries int, fn func(context.Context) (T, error)) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var lastErr error
	var zero T
	for i := 0; i < maxTries; i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err

		if i < maxTries-1 {
			select {
			case <-time.After(Backoff(i)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}
