package xretry

import (
	"context"
	"time"
)

// RetryPolicy decides whether a failed attempt should be retried.
//
// Through Retryer:
//   - MaxAttempts() sets retry-go's Attempts ceiling
//   - ShouldRetry() is called after every failed attempt
//   - an Unrecoverable-wrapped error short-circuits before ShouldRetry runs
type RetryPolicy interface {
	// MaxAttempts returns the maximum number of attempts, first attempt
	// included. 0 means unlimited.
	MaxAttempts() int

	// ShouldRetry reports whether another attempt should run.
	// attempt is 1-based; err is the error from the attempt that just failed.
	ShouldRetry(ctx context.Context, attempt int, err error) bool
}

// BackoffPolicy computes the delay before the next retry.
type BackoffPolicy interface {
	// NextDelay returns the delay before attempt (1-based).
	NextDelay(attempt int) time.Duration
}

// Executor runs fn with retry semantics applied.
type Executor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
