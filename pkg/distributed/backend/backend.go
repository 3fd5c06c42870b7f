// Package backend defines the capability interfaces a Redis-compatible
// key-value server must expose to back this module's coordination
// primitives, and ships a concrete implementation over go-redis/v9.
//
// The coordination layer (quorum, redlock, semaphore, latch) depends only
// on these interfaces, never on the concrete Redis client: a narrow
// capability set per primitive (LockBackend, SemaphoreBackend,
// LatchBackend) rather than one god interface covering every operation.
package backend

import (
	"context"
	"time"
)

// LockBackend is the capability a single-instance lock or a Redlock-style
// quorum lock needs from a backend.
type LockBackend interface {
	// SetLock performs an atomic set-if-absent: it stores owner under key
	// with the given expiry and reports true iff key did not already exist.
	SetLock(ctx context.Context, key, owner string, ttl time.Duration) (ok bool, err error)

	// RemoveLock deletes key iff its current value equals owner. It never
	// deletes a key it does not own, and reports false both when the key
	// was absent and when it was owned by someone else.
	RemoveLock(ctx context.Context, key, owner string) (ok bool, err error)
}

// SemaphoreBackend is the capability a counting semaphore needs from a
// backend.
type SemaphoreBackend interface {
	// SetSemaphoreLock atomically adds owner to the set at key iff doing so
	// would not push its cardinality past maxLeases, and refreshes the
	// lease's TTL (and a companion per-owner marker key used by cleanup).
	SetSemaphoreLock(ctx context.Context, key, owner string, maxLeases int64, ttl time.Duration) (ok bool, err error)

	// RemoveSemaphoreLock removes owner from the set at key and deletes its
	// companion marker, unconditionally.
	RemoveSemaphoreLock(ctx context.Context, key, owner string) (ok bool, err error)

	// CleanUpExpiredSemaphoreLocks removes every owner in the set at key
	// whose companion marker has expired, releasing slots held by holders
	// that crashed without calling RemoveSemaphoreLock. Expiry is decided
	// by the marker's own TTL, not by a ttl passed in here.
	CleanUpExpiredSemaphoreLocks(ctx context.Context, key string) (ok bool, err error)
}

// LatchBackend is the capability a listening count-down latch needs from a
// backend.
type LatchBackend interface {
	// Count adds a unique token for clientID/count to the set at latchKey,
	// refreshes the key's TTL monotonically (PEXPIRE ... GT semantics once
	// it is already set), and publishes "open" on channel once the set's
	// cardinality reaches initialCount.
	Count(ctx context.Context, latchKey, channel, clientID string, count, initialCount int64, ttl time.Duration) (ok bool, err error)

	// UndoCount removes the token for clientID/count from the set at
	// latchKey, rolling back a Count call that did not reach quorum. It
	// returns the number of members removed (0 or 1).
	UndoCount(ctx context.Context, latchKey, clientID string, count int64) (removed int64, err error)

	// CheckCount reports the current cardinality of the set at latchKey.
	CheckCount(ctx context.Context, latchKey string) (cardinality int64, err error)

	// Listen subscribes to channel and returns a channel of received
	// message payloads. The subscription is torn down when ctx is done or
	// the returned cleanup function is called; callers should always defer
	// the cleanup function, even after ctx cancellation, to release the
	// underlying connection.
	Listen(ctx context.Context, channel string) (messages <-chan string, cleanup func(), err error)
}
