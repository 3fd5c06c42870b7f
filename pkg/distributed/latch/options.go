package latch

import "time"

// DefaultMaxDuration is the TTL of the latch key, and Await's upper bound,
// used when New is not given WithMaxDuration.
const DefaultMaxDuration = 10 * time.Minute

// minPollInterval floors the poll interval Await derives from timeout/10,
// so a very short Await call still polls more than once.
const minPollInterval = 10 * time.Millisecond

const (
	defaultRetryCount = 3
	defaultRetryDelay = 100 * time.Millisecond
)

// Option configures a Latch at construction.
type Option func(*options)

type options struct {
	maxDuration time.Duration
	retryCount  int
	retryDelay  time.Duration
}

func defaultOptions() *options {
	return &options{
		maxDuration: DefaultMaxDuration,
		retryCount:  defaultRetryCount,
		retryDelay:  defaultRetryDelay,
	}
}

// WithMaxDuration overrides the latch key's TTL and Await's default
// timeout.
func WithMaxDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxDuration = d
		}
	}
}

// WithRetryCount overrides the number of count_down attempts.
func WithRetryCount(n int) Option {
	return func(o *options) { o.retryCount = n }
}

// WithRetryDelay overrides the fixed delay between count_down attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.retryDelay = d }
}
