package xretry

import "time"

// FixedBackoff returns the same delay before every retry.
type FixedBackoff struct {
	delay time.Duration
}

// NewFixedBackoff creates a FixedBackoff. A negative delay is clamped to 0.
func NewFixedBackoff(delay time.Duration) *FixedBackoff {
	if delay < 0 {
		delay = 0
	}
	return &FixedBackoff{delay: delay}
}

func (b *FixedBackoff) NextDelay(_ int) time.Duration {
	return b.delay
}

var _ BackoffPolicy = (*FixedBackoff)(nil)
