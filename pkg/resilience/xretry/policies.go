package xretry

import "context"

// FixedRetryPolicy retries a fixed number of times (including the first
// attempt), stopping early on context cancellation or a non-retryable
// error.
type FixedRetryPolicy struct {
	maxAttempts int
}

// NewFixedRetry creates a FixedRetryPolicy. maxAttempts is clamped to a
// minimum of 1 (a policy with zero attempts would never run fn at all).
func NewFixedRetry(maxAttempts int) *FixedRetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &FixedRetryPolicy{maxAttempts: maxAttempts}
}

func (p *FixedRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

func (p *FixedRetryPolicy) ShouldRetry(ctx context.Context, attempt int, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if attempt >= p.maxAttempts {
		return false
	}
	return IsRetryable(err)
}

var _ RetryPolicy = (*FixedRetryPolicy)(nil)
