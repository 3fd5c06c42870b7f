package simplelock

import "errors"

// ErrNilBackend is returned by New when backend is nil.
var ErrNilBackend = errors.New("simplelock: backend must not be nil")

// ErrInvalidRetryCount is returned by New when retryCount < 1.
var ErrInvalidRetryCount = errors.New("simplelock: retryCount must be >= 1")

// ErrInvalidRetryDelay is returned by New when retryDelay <= 0.
var ErrInvalidRetryDelay = errors.New("simplelock: retryDelay must be > 0")

// errLockMiss drives the retry loop in Lock; it never escapes to a caller.
var errLockMiss = errors.New("simplelock: lock attempt missed")
