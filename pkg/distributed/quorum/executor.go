package quorum

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/himadieievsv/distributed-locks/pkg/lifecycle/xrun"
)

// Strategy selects how Run waits for the fanned-out tasks.
type Strategy int

const (
	// WaitAll waits for every backend's task to finish. Used by
	// acquisitions, which need every backend's verdict to decide quorum.
	WaitAll Strategy = iota
	// WaitAny waits only for the first task to produce a non-nil result,
	// then cooperatively cancels the rest. Used by the latch's await,
	// where any single backend observing "open" suffices.
	WaitAny
)

// defaultDrift is added to the 1%-of-timeout clock-drift allowance; it
// models the minimum skew assumed between any two backends even on a fast
// network.
const defaultDrift = 3 * time.Millisecond

// Run fans f out to every backend concurrently, waits according to
// strategy, and returns the collected non-nil results if they reach
// quorum within the validity window computed from timeout and clock
// drift. Otherwise it returns nil. Quorum is ⌊N/2⌋+1 for WaitAll and 1 for
// WaitAny.
//
// f must never panic and must absorb its own backend errors, returning nil
// in place of raising — Run never fails for a per-backend problem. A nil f
// or len(backends)==0 also yields a nil result.
func Run[B any, R any](ctx context.Context, backends []B, f func(ctx context.Context, b B) *R, timeout time.Duration, strategy Strategy, opts ...Option) []R {
	n := len(backends)
	if n == 0 || f == nil {
		return nil
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	// WaitAny only ever collects a single result before cancelling the
	// rest (any backend's signal suffices, per the latch's Await), so its
	// quorum requirement degenerates to 1 rather than the majority rule
	// WaitAll acquisitions use.
	quorumSize := n/2 + 1
	if strategy == WaitAny {
		quorumSize = 1
	}
	clockDrift := driftAllowance(timeout, o.drift)

	results, elapsed := fanOut(ctx, backends, f, strategy, o.tracer)

	validity := timeout - elapsed - clockDrift
	if len(results) < quorumSize || validity < 0 {
		return nil
	}
	return results
}

// driftAllowance computes ⌈timeout×0.01⌉ + drift, in whole milliseconds of
// precision for the ceiling term.
func driftAllowance(timeout, drift time.Duration) time.Duration {
	onePercentMs := math.Ceil(float64(timeout.Milliseconds()) * 0.01)
	return time.Duration(onePercentMs)*time.Millisecond + drift
}

// ClockDrift exposes the default clock-drift allowance Run computes for a
// given timeout, for callers (the latch's precondition check) that need to
// reason about the validity window without running a fan-out.
func ClockDrift(timeout time.Duration) time.Duration {
	return driftAllowance(timeout, defaultDrift)
}

// fanOut starts one goroutine per backend under a shared cancelable scope
// and returns every non-nil result together with the elapsed wall-clock
// time the waiting strategy says should count toward the validity budget.
func fanOut[B any, R any](ctx context.Context, backends []B, f func(ctx context.Context, b B) *R, strategy Strategy, tracer trace.Tracer) ([]R, time.Duration) {
	start := time.Now()
	g, _ := xrun.NewGroup(ctx, xrun.WithName("quorum-fanout"))

	var (
		mu             sync.Mutex
		results        []R
		successElapsed time.Duration
	)

	for i, b := range backends {
		b, i := b, i
		g.GoWithName(fmt.Sprintf("backend[%d]", i), func(ctx context.Context) error {
			ctx, span := tracer.Start(ctx, fmt.Sprintf("quorum.backend[%d]", i))
			defer span.End()

			r := f(ctx, b)
			if r == nil {
				return nil
			}
			mu.Lock()
			results = append(results, *r)
			isFirst := len(results) == 1
			mu.Unlock()
			if strategy == WaitAny && isFirst {
				mu.Lock()
				successElapsed = time.Since(start)
				mu.Unlock()
				g.Cancel(errWaitAnySatisfied)
			}
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(start)
	mu.Lock()
	defer mu.Unlock()
	if strategy == WaitAny && successElapsed > 0 {
		elapsed = successElapsed
	}
	out := make([]R, len(results))
	copy(out, results)
	return out, elapsed
}
