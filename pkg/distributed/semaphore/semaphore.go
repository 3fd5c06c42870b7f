package semaphore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/ownerid"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/quorum"
	"github.com/himadieievsv/distributed-locks/pkg/lifecycle/xrun"
	"github.com/himadieievsv/distributed-locks/pkg/resilience/xretry"
)

// held is the quorum executor's per-backend result marker for a granted
// semaphore slot.
type held struct{}

// Semaphore is a bounded-concurrency lease over N independent backends:
// an acquisition grants one of maxLeases slots on a majority of backends
// within the clock-drift-adjusted validity window, identical in control
// structure to redlock.RedLock but with a cleanup pass ahead of every
// acquire to release slots abandoned by crashed holders.
type Semaphore struct {
	backends  []backend.SemaphoreBackend
	ownerID   string
	maxLeases int64
	opts      *options
	retryer   *xretry.Retryer
}

// New validates backends, maxLeases and the retry policy and returns a
// Semaphore. Returns ErrEmptyBackends, ErrInvalidMaxLeases,
// ErrInvalidRetryCount or ErrInvalidRetryDelay on a precondition
// violation.
func New(backends []backend.SemaphoreBackend, maxLeases int64, opts ...Option) (*Semaphore, error) {
	if len(backends) == 0 {
		return nil, ErrEmptyBackends
	}
	if maxLeases < 1 {
		return nil, ErrInvalidMaxLeases
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

	return &Semaphore{
		backends:  backends,
		ownerID:   ownerid.New(),
		maxLeases: maxLeases,
		opts:      o,
		retryer:   retryer,
	}, nil
}

// Lock attempts to acquire one of maxLeases slots on key for ttl across a
// majority of backends. A ttl <= 0 uses the configured default TTL. Each
// per-backend attempt first runs the expired-lease cleanup pass so a
// crashed holder's slot is released before this acquisition is judged
// against maxLeases.
//
// Every attempt that misses quorum or validity releases the slot on every
// backend (best-effort) before the next attempt starts, so a tentative
// minority of successful writes never survives past its own failed
// attempt, let alone the whole retry loop.
func (s *Semaphore) Lock(ctx context.Context, key string, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = s.opts.defaultTTL
	}

	f := func(ctx context.Context, b backend.SemaphoreBackend) *held {
		if _, err := b.CleanUpExpiredSemaphoreLocks(ctx, key); err != nil {
			slog.Default().Debug("semaphore: cleanup failed", slog.String("key", key), slog.Any("error", err))
		}
		ok, err := b.SetSemaphoreLock(ctx, key, s.ownerID, s.maxLeases, ttl)
		if err != nil {
			slog.Default().Debug("semaphore: set_semaphore_lock failed", slog.String("key", key), slog.Any("error", err))
			return nil
		}
		if !ok {
			return nil
		}
		return &held{}
	}

	var acquired bool
	_ = s.retryer.Do(ctx, func(ctx context.Context) error {
		results := quorum.Run(ctx, s.backends, f, ttl, quorum.WaitAll)
		if len(results) == 0 {
			s.Unlock(ctx, key)
			return errQuorumMiss
		}
		acquired = true
		return nil
	})
	return acquired
}

// Unlock releases this instance's slot on every backend in parallel. No
// quorum check, no retry: release is best-effort by design.
func (s *Semaphore) Unlock(ctx context.Context, key string) {
	g, _ := xrun.NewGroup(ctx, xrun.WithName("semaphore-unlock"))
	for i, b := range s.backends {
		b, i := b, i
		g.GoWithName(fmt.Sprintf("backend[%d]", i), func(ctx context.Context) error {
			if _, err := b.RemoveSemaphoreLock(ctx, key, s.ownerID); err != nil {
				slog.Default().Debug("semaphore: remove_semaphore_lock failed", slog.String("key", key), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
