// Package xrun provides errgroup+context based structured concurrency for
// fanning a call out to several independent tasks under one cancelable
// scope.
//
// # Core concept
//
// Context-based coordination: when any task returns an error, or the Group
// is explicitly canceled, every task's context is canceled. Tasks should
// observe ctx.Done() and return promptly.
//
// # Quick start
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("fanout"))
//	for _, b := range backends {
//	    b := b
//	    g.Go(func(ctx context.Context) error {
//	        return call(ctx, b)
//	    })
//	}
//	err := g.Wait()
//
// # Design decisions
//
//  1. Context-based coordination, not callbacks: every task observes
//     cancellation through its context, the idiomatic Go pattern. Built on
//     context.WithCancelCause so the original cancellation cause survives
//     errgroup's single-error Wait().
//
//  2. errgroup single-error semantics: Wait() returns only the first
//     non-nil error; by the time it returns, every other task has already
//     been canceled via the shared context. Callers that need every task's
//     outcome should have fn record it (e.g. into a channel or slice)
//     before returning, rather than relying on the returned error.
//
//  3. No HTTP server or signal-handling helpers: this package exists to
//     back in-process fan-out (the quorum executor), not process lifecycle
//     management, so those concerns were dropped rather than carried along
//     unused.
package xrun
