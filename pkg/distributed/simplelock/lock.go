package simplelock

import (
	"context"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/ownerid"
	"github.com/himadieievsv/distributed-locks/pkg/resilience/xretry"
)

// Lock is a mutual-exclusion lock against a single backend, with no quorum
// machinery: acquisition retries a fixed number of times with a fixed
// delay, and release is the conditional delete from LockInstance/
// UnlockInstance keyed by an owner id generated once at construction.
type Lock struct {
	backend backend.LockBackend
	ownerID string
	opts    *options
	retryer *xretry.Retryer
}

// New builds a Lock over backend. Returns ErrNilBackend if backend is nil,
// ErrInvalidRetryCount if the effective retry count is < 1, or
// ErrInvalidRetryDelay if the effective retry delay is <= 0.
func New(b backend.LockBackend, opts ...Option) (*Lock, error) {
	if b == nil {
		return nil, ErrNilBackend
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

	return &Lock{
		backend: b,
		ownerID: ownerid.New(),
		opts:    o,
		retryer: retryer,
	}, nil
}

// Lock attempts to acquire key with ttl, retrying per the configured retry
// policy. A ttl of 0 uses the lock's configured default TTL.
func (l *Lock) Lock(ctx context.Context, key string, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = l.opts.defaultTTL
	}

	var acquired bool
	_ = l.retryer.Do(ctx, func(ctx context.Context) error {
		acquired = LockInstance(ctx, l.backend, key, l.ownerID, ttl)
		if !acquired {
			return errLockMiss
		}
		return nil
	})
	return acquired
}

// Unlock releases key if and only if this instance's owner id still holds
// it. Best-effort: backend errors are swallowed.
func (l *Lock) Unlock(ctx context.Context, key string) {
	UnlockInstance(ctx, l.backend, key, l.ownerID)
}
