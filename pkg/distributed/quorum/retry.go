package quorum

import (
	"context"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/resilience/xretry"
)

// Retrying wraps Run with a fixed-count, fixed-delay retry loop: any attempt
// that does not reach quorum is treated as transient and retried, up to
// retryCount total attempts, retryDelay apart. The first attempt that does
// reach quorum short-circuits the loop.
type Retrying[B any, R any] struct {
	backends []B
	f        func(ctx context.Context, b B) *R
	timeout  time.Duration
	strategy Strategy
	opts     []Option
	retryer  *xretry.Retryer
}

// NewRetrying validates retryCount and retryDelay and returns a Retrying
// wrapper around Run. Preconditions: retryCount >= 1, retryDelay > 0.
func NewRetrying[B any, R any](
	backends []B,
	f func(ctx context.Context, b B) *R,
	timeout time.Duration,
	strategy Strategy,
	retryCount int,
	retryDelay time.Duration,
	opts ...Option,
) (*Retrying[B, R], error) {
	if retryCount < 1 {
		return nil, ErrInvalidRetryCount
	}
	if retryDelay <= 0 {
		return nil, ErrInvalidRetryDelay
	}

	retryer := xretry.NewRetryer(
		xretry.WithRetryPolicy(xretry.NewFixedRetry(retryCount)),
		xretry.WithBackoffPolicy(xretry.NewFixedBackoff(retryDelay)),
	)

	return &Retrying[B, R]{
		backends: backends,
		f:        f,
		timeout:  timeout,
		strategy: strategy,
		opts:     opts,
		retryer:  retryer,
	}, nil
}

// Run attempts Run up to the configured retryCount, returning the first
// attempt's results that reach quorum, or nil if every attempt misses.
func (r *Retrying[B, R]) Run(ctx context.Context) []R {
	var last []R
	_ = r.retryer.Do(ctx, func(ctx context.Context) error {
		last = Run(ctx, r.backends, r.f, r.timeout, r.strategy, r.opts...)
		if len(last) == 0 {
			return errQuorumMiss
		}
		return nil
	})
	if len(last) == 0 {
		return nil
	}
	return last
}
