package latch

import "errors"

// ErrInvalidCount is returned by New when count < 1.
var ErrInvalidCount = errors.New("latch: count must be >= 1")

// ErrEmptyBackends is returned by New when backends is empty.
var ErrEmptyBackends = errors.New("latch: backends must not be empty")

// ErrInvalidMaxDuration is returned by New when maxDuration is too small
// relative to its own clock-drift allowance to ever leave a non-negative
// validity window for count_down.
var ErrInvalidMaxDuration = errors.New("latch: maxDuration must be >= 2x its clock-drift allowance")

// ErrInvalidRetryCount is returned by New when retryCount < 1.
var ErrInvalidRetryCount = errors.New("latch: retryCount must be >= 1")

// ErrInvalidRetryDelay is returned by New when retryDelay <= 0.
var ErrInvalidRetryDelay = errors.New("latch: retryDelay must be > 0")
