package redlock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/ownerid"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/quorum"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/simplelock"
	"github.com/himadieievsv/distributed-locks/pkg/lifecycle/xrun"
	"github.com/himadieievsv/distributed-locks/pkg/resilience/xretry"
)

// held is the quorum executor's per-backend result marker: its presence
// means that backend granted the lease, its absence (a nil *held) means it
// didn't. The executor never looks past the pointer's nilness.
type held struct{}

// RedLock is a Redlock-style quorum lock over N independent backends: an
// acquisition is accepted only if a majority of backends grant it within
// the clock-drift-adjusted validity window, and is rolled back on every
// backend if quorum isn't reached.
type RedLock struct {
	backends []backend.LockBackend
	ownerID  string
	opts     *options
	retryer  *xretry.Retryer
}

// New validates backends and the retry policy and returns a RedLock.
// Returns ErrEmptyBackends, ErrInvalidRetryCount or ErrInvalidRetryDelay on
// a precondition violation.
func New(backends []backend.LockBackend, opts ...Option) (*RedLock, error) {
	if len(backends) == 0 {
		return nil, ErrEmptyBackends
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.retryCount < 1 {
		return nil, ErrInvalidRetryCount
	}
	if o.retryDelay <= 0 {
		return nil, ErrInvalidRetryDelay
	}

	retryer := xretry.NewRetryer(
		xretry.WithRetryPolicy(xretry.NewFixedRetry(o.retryCount)),
		xretry.WithBackoffPolicy(xretry.NewFixedBackoff(o.retryDelay)),
	)

	return &RedLock{
		backends: backends,
		ownerID:  ownerid.New(),
		opts:     o,
		retryer:  retryer,
	}, nil
}

// Lock attempts to acquire key for ttl across a majority of backends. A
// ttl <= 0 uses the configured default TTL. Returns false immediately,
// without contacting any backend, if the effective ttl doesn't exceed
// minTTL — at that size the clock-drift allowance alone could consume the
// whole lease.
//
// Every attempt that misses quorum or validity is rolled back
// (best-effort unlock on every backend) before the next attempt starts,
// so a tentative minority of successful writes never survives past its
// own failed attempt, let alone the whole retry loop.
func (r *RedLock) Lock(ctx context.Context, key string, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = r.opts.defaultTTL
	}
	if ttl <= minTTL {
		slog.Default().Warn("redlock: ttl too small for clock-drift allowance",
			slog.String("key", key), slog.Duration("ttl", ttl))
		return false
	}

	f := func(ctx context.Context, b backend.LockBackend) *held {
		if simplelock.LockInstance(ctx, b, key, r.ownerID, ttl) {
			return &held{}
		}
		return nil
	}

	var acquired bool
	_ = r.retryer.Do(ctx, func(ctx context.Context) error {
		results := quorum.Run(ctx, r.backends, f, ttl, quorum.WaitAll)
		if len(results) == 0 {
			r.Unlock(ctx, key)
			return errQuorumMiss
		}
		acquired = true
		return nil
	})
	return acquired
}

// Unlock fires the conditional delete on every backend in parallel. No
// quorum check, no retry: this layer's unlock is best-effort by design.
func (r *RedLock) Unlock(ctx context.Context, key string) {
	g, _ := xrun.NewGroup(ctx, xrun.WithName("redlock-unlock"))
	for i, b := range r.backends {
		b, i := b, i
		g.GoWithName(fmt.Sprintf("backend[%d]", i), func(ctx context.Context) error {
			simplelock.UnlockInstance(ctx, b, key, r.ownerID)
			return nil
		})
	}
	_ = g.Wait()
}
