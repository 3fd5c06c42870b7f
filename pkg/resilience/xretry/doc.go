// Package xretry provides a small retry executor built on
// avast/retry-go/v5, combining a RetryPolicy (when to stop) with a
// BackoffPolicy (how long to wait between attempts).
//
// # Quick start
//
//	r := xretry.NewRetryer(
//	    xretry.WithRetryPolicy(xretry.NewFixedRetry(3)),
//	    xretry.WithBackoffPolicy(xretry.NewFixedBackoff(100*time.Millisecond)),
//	)
//	result, err := xretry.DoWithResult(ctx, r, func(ctx context.Context) (string, error) {
//	    return fetch(ctx)
//	})
//
// # Design decisions
//
//  1. Fixed-count/fixed-delay only: this package started as a general
//     retry toolkit with exponential and linear backoff policies; every
//     caller in this tree (the quorum executor's retrying wrapper and the
//     redlock, semaphore and simplelock retry loops) needs a fixed attempt
//     count and a fixed delay, so the unused variants were trimmed rather
//     than carried as dead weight.
//  2. DoWithResult is a package-level generic function, not a method on
//     Retryer, because Go does not allow a method to introduce its own type
//     parameters.
//  3. Retryer.Do/DoWithResult never panic on a nil receiver, nil context, or
//     nil fn; they return a sentinel error instead, consistent with this
//     module's policy of using errors only for precondition violations.
package xretry
