package semaphore

import "errors"

// ErrEmptyBackends is returned by New when backends is empty.
var ErrEmptyBackends = errors.New("semaphore: backends must not be empty")

// ErrInvalidMaxLeases is returned by New when maxLeases < 1.
var ErrInvalidMaxLeases = errors.New("semaphore: maxLeases must be >= 1")

// ErrInvalidRetryCount is returned by New when retryCount < 1.
var ErrInvalidRetryCount = errors.New("semaphore: retryCount must be >= 1")

// ErrInvalidRetryDelay is returned by New when retryDelay <= 0.
var ErrInvalidRetryDelay = errors.New("semaphore: retryDelay must be > 0")

// errQuorumMiss drives the retry loop in Lock: it is never returned to a
// caller, only fed to the retryer's RetryIf to distinguish "this attempt
// didn't reach quorum" from success.
var errQuorumMiss = errors.New("semaphore: attempt did not reach quorum")
