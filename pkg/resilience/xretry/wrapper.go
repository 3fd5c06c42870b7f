package xretry

import (
	retry "github.com/avast/retry-go/v5"
)

// The following mirror the slice of avast/retry-go/v5's API surface that
// Retryer's buildOptions needs, so callers never import retry-go directly.
type (
	// Option is retry-go's configuration option type.
	Option = retry.Option

	// DelayContext carries the configuration values available to a
	// DelayTypeFunc.
	DelayContext = retry.DelayContext
)

var (
	// Attempts sets the total number of attempts, first attempt included.
	Attempts = retry.Attempts

	// RetryIf sets the predicate deciding whether a failed attempt retries.
	RetryIf = retry.RetryIf

	// DelayType sets the function computing the delay before each retry.
	DelayType = retry.DelayType

	// OnRetry sets a callback invoked before each retry.
	OnRetry = retry.OnRetry

	// Context sets the context retry-go observes for cancellation.
	Context = retry.Context

	// LastErrorOnly makes Do/DoWithData return only the final error.
	LastErrorOnly = retry.LastErrorOnly

	// Unrecoverable marks an error as non-retryable.
	Unrecoverable = retry.Unrecoverable

	// IsRecoverable reports whether err was not marked via Unrecoverable.
	IsRecoverable = retry.IsRecoverable
)
