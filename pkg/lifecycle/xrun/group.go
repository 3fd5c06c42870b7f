// Package xrun provides structured-concurrency fan-out built on errgroup and
// context cancellation. It backs the quorum executor: one Group is created
// per fan-out call, one goroutine per backend runs under it, and cancelling
// the Group propagates to every backend task.
package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Group runs a set of goroutines under a shared, cancelable context.
//
// When any goroutine returns a non-nil error, or the Group is explicitly
// canceled, the context passed to every goroutine is canceled. Go and Cancel
// are safe to call concurrently; Wait should be called exactly once.
//
// Usage:
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("quorum-fanout"))
//	for _, b := range backends {
//	    b := b
//	    g.Go(func(ctx context.Context) error {
//	        return callBackend(ctx, b)
//	    })
//	}
//	_ = g.Wait()
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup creates a Group derived from ctx. The returned context is passed
// to every goroutine registered with Go, and is canceled as soon as one of
// them returns an error or the Group itself is canceled.
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go starts a goroutine running fn with the Group's context.
//
// fn should observe ctx.Done() and return promptly on cancellation:
//
//	g.Go(func(ctx context.Context) error {
//	    select {
//	    case <-ctx.Done():
//	        return ctx.Err()
//	    case r := <-resultCh:
//	        return handle(r)
//	    }
//	})
//
// A non-nil return from fn cancels every other goroutine in the Group.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName behaves like Go but logs start/stop events tagged with name,
// useful when fanning out to several named backends at once.
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		g.opts.logger.Debug("task starting",
			slog.String("group", g.opts.name),
			slog.String("task", name),
		)
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Debug("task exited with error",
				slog.String("group", g.opts.name),
				slog.String("task", name),
				slog.Any("error", err),
			)
		} else {
			g.opts.logger.Debug("task stopped",
				slog.String("group", g.opts.name),
				slog.String("task", name),
			)
		}
		return err
	})
}

// Wait blocks until every goroutine registered with Go has returned.
//
// It returns the first non-nil, non-context.Canceled error reported by a
// goroutine. If the Group was canceled via Cancel(cause), that cause is
// returned even when every goroutine itself returned nil or
// context.Canceled; a cancellation with no explicit cause returns nil.
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() != nil {
			if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
				return cause
			}
			return nil
		}
		return err
	}

	if err == nil && g.causeCtx.Err() != nil {
		if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
	}

	return err
}

// Cancel cancels every goroutine's context. cause is surfaced by Wait() via
// context.Cause; a nil cause yields a nil Wait() return (absent any
// goroutine error of its own).
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}
