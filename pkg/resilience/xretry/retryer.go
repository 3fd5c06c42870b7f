package xretry

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// safeIntToUint converts a non-negative int to uint, clamping negatives to 0.
func safeIntToUint(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}

// safeUintToInt converts uint to int, clamping values above MaxInt.
func safeUintToInt(n uint) int {
	if n > uint(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

var _ Executor = (*Retryer)(nil)

// Retryer combines a RetryPolicy and a BackoffPolicy into a single
// execution helper, built on avast/retry-go/v5.
type Retryer struct {
	retryPolicy   RetryPolicy
	backoffPolicy BackoffPolicy
	onRetry       func(attempt int, err error)
}

// RetryerOption configures a Retryer.
type RetryerOption func(*Retryer)

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(p RetryPolicy) RetryerOption {
	return func(r *Retryer) {
		if p != nil {
			r.retryPolicy = p
		}
	}
}

// WithBackoffPolicy sets the backoff policy.
func WithBackoffPolicy(p BackoffPolicy) RetryerOption {
	return func(r *Retryer) {
		if p != nil {
			r.backoffPolicy = p
		}
	}
}

// WithOnRetry sets a callback invoked before each retry. A nil fn is
// silently ignored.
func WithOnRetry(f func(attempt int, err error)) RetryerOption {
	return func(r *Retryer) {
		if f != nil {
			r.onRetry = f
		}
	}
}

// NewRetryer creates a Retryer. The default policy is FixedRetry(3) with no
// backoff delay; callers that need the fixed-count/fixed-delay contract
// spelled out by this package's consumers should always pass both
// WithRetryPolicy and WithBackoffPolicy explicitly.
func NewRetryer(opts ...RetryerOption) *Retryer {
	r := &Retryer{
		retryPolicy:   NewFixedRetry(3),
		backoffPolicy: NewFixedBackoff(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn, retrying per the configured policies. A nil receiver, nil
// context, or nil fn returns the matching sentinel error immediately.
func (r *Retryer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil {
		return ErrNilRetryer
	}
	if ctx == nil {
		return ErrNilContext
	}
	if fn == nil {
		return ErrNilFunc
	}
	opts := r.buildOptions(ctx)
	return retry.New(opts...).Do(func() error {
		return fn(ctx)
	})
}

// DoWithResult runs fn, retrying per the configured policies, and returns
// its result. Must be called as a package-level function since Go methods
// cannot carry their own type parameters.
func DoWithResult[T any](ctx context.Context, r *Retryer, fn func(ctx context.Context) (T, error)) (T, error) {
	if r == nil {
		var zero T
		return zero, ErrNilRetryer
	}
	if ctx == nil {
		var zero T
		return zero, ErrNilContext
	}
	if fn == nil {
		var zero T
		return zero, ErrNilFunc
	}
	opts := r.buildOptions(ctx)
	return retry.NewWithData[T](opts...).Do(func() (T, error) {
		return fn(ctx)
	})
}

// buildOptions translates the Retryer's policies into retry-go options.
// Rebuilt on every call; cheap enough for the coordination-primitive retry
// loops this package backs (a handful of attempts per lock/latch call).
func (r *Retryer) buildOptions(ctx context.Context) []Option {
	opts := make([]Option, 0, 5)
	opts = append(opts, Context(ctx))

	retryPolicy := r.retryPolicy
	if retryPolicy == nil {
		retryPolicy = NewFixedRetry(3)
	}
	backoffPolicy := r.backoffPolicy
	if backoffPolicy == nil {
		backoffPolicy = NewFixedBackoff(0)
	}

	opts = append(opts, Attempts(safeIntToUint(retryPolicy.MaxAttempts())))

	var attemptCount atomic.Int64
	opts = append(opts, RetryIf(func(err error) bool {
		count := int(attemptCount.Add(1))
		if !IsRecoverable(err) {
			return false
		}
		return retryPolicy.ShouldRetry(ctx, count, err)
	}))

	opts = append(opts, DelayType(func(n uint, _ error, _ DelayContext) time.Duration {
		return backoffPolicy.NextDelay(safeUintToInt(n))
	}))

	if r.onRetry != nil {
		opts = append(opts, OnRetry(func(n uint, err error) {
			r.onRetry(safeUintToInt(n)+1, err)
		}))
	}

	opts = append(opts, LastErrorOnly(true))

	return opts
}

// RetryPolicy returns the current retry policy. A nil receiver returns nil.
func (r *Retryer) RetryPolicy() RetryPolicy {
	if r == nil {
		return nil
	}
	return r.retryPolicy
}

// BackoffPolicy returns the current backoff policy. A nil receiver returns nil.
func (r *Retryer) BackoffPolicy() BackoffPolicy {
	if r == nil {
		return nil
	}
	return r.backoffPolicy
}
