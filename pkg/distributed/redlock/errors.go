package redlock

import "errors"

// ErrEmptyBackends is returned by New when backends is empty.
var ErrEmptyBackends = errors.New("redlock: backends must not be empty")

// ErrInvalidRetryCount is returned by New when retryCount < 1.
var ErrInvalidRetryCount = errors.New("redlock: retryCount must be >= 1")

// ErrInvalidRetryDelay is returned by New when retryDelay <= 0.
var ErrInvalidRetryDelay = errors.New("redlock: retryDelay must be > 0")

// errQuorumMiss drives the retry loop in Lock: it is never returned to a
// caller, only fed to the retryer's RetryIf to distinguish "this attempt
// didn't reach quorum" from success.
var errQuorumMiss = errors.New("redlock: attempt did not reach quorum")
