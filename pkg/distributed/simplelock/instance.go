package simplelock

import (
	"context"
	"log/slog"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
)

// LockInstance issues a set-if-absent against b with owner as the stored
// value and ttl as the expiry. It reports true iff b accepted the write;
// a backend error is logged at debug level and reported as a miss, never
// returned to the caller.
func LockInstance(ctx context.Context, b backend.LockBackend, key, owner string, ttl time.Duration) bool {
	ok, err := b.SetLock(ctx, key, owner, ttl)
	if err != nil {
		slog.Default().Debug("simplelock: set_lock failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return ok
}

// UnlockInstance issues the conditional delete against b: the key is
// removed only if its current value equals owner. Backend errors are
// logged at debug level and otherwise ignored — unlock is always
// best-effort.
func UnlockInstance(ctx context.Context, b backend.LockBackend, key, owner string) {
	if _, err := b.RemoveLock(ctx, key, owner); err != nil {
		slog.Default().Debug("simplelock: remove_lock failed", slog.String("key", key), slog.Any("error", err))
	}
}
