package redlock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/redlock"
)

// countingLockBackend wraps a real LockBackend and counts SetLock/RemoveLock
// calls, so a test can assert on the per-attempt rollback cadence instead of
// just the final acquired/not-acquired outcome.
type countingLockBackend struct {
	backend.LockBackend
	setLockCalls    atomic.Int64
	removeLockCalls atomic.Int64
}

func (c *countingLockBackend) SetLock(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	c.setLockCalls.Add(1)
	return c.LockBackend.SetLock(ctx, key, owner, ttl)
}

func (c *countingLockBackend) RemoveLock(ctx context.Context, key, owner string) (bool, error) {
	c.removeLockCalls.Add(1)
	return c.LockBackend.RemoveLock(ctx, key, owner)
}

func newTestBackends(t *testing.T, n int) []backend.LockBackend {
	t.Helper()
	backends := make([]backend.LockBackend, n)
	for i := 0; i < n; i++ {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		b, err := backend.NewRedis(client)
		require.NoError(t, err)
		backends[i] = b
	}
	return backends
}

func TestNew_RejectsEmptyBackends(t *testing.T) {
	_, err := redlock.New(nil)
	require.ErrorIs(t, err, redlock.ErrEmptyBackends)
}

func TestNew_RejectsInvalidRetryCount(t *testing.T) {
	backends := newTestBackends(t, 1)
	_, err := redlock.New(backends, redlock.WithRetryCount(0))
	require.ErrorIs(t, err, redlock.ErrInvalidRetryCount)
}

func TestNew_RejectsInvalidRetryDelay(t *testing.T) {
	backends := newTestBackends(t, 1)
	_, err := redlock.New(backends, redlock.WithRetryDelay(0))
	require.ErrorIs(t, err, redlock.ErrInvalidRetryDelay)
}

func TestLock_AllBackendsOK_ReturnsTrue(t *testing.T) {
	backends := newTestBackends(t, 3)
	rl, err := redlock.New(backends)
	require.NoError(t, err)

	require.True(t, rl.Lock(context.Background(), "k", 5*time.Second))
}

func TestLock_MinorityOK_ReturnsFalseAndRollsBack(t *testing.T) {
	backends := newTestBackends(t, 3)
	// pre-occupy a majority (2 of 3) with a different owner so this
	// instance can only ever win 1 of 3 backends.
	ctx := context.Background()
	_, err := backends[0].SetLock(ctx, "k", "someone-else", time.Minute)
	require.NoError(t, err)
	_, err = backends[1].SetLock(ctx, "k", "someone-else", time.Minute)
	require.NoError(t, err)

	rl, err := redlock.New(backends, redlock.WithRetryCount(2), redlock.WithRetryDelay(10*time.Millisecond))
	require.NoError(t, err)

	require.False(t, rl.Lock(ctx, "k", 5*time.Second))

	// the one backend it did acquire must have been rolled back.
	ok, err := backends[2].SetLock(ctx, "k", "probe", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLock_MinorityOK_RollsBackOnEveryAttempt(t *testing.T) {
	real := newTestBackends(t, 3)
	ctx := context.Background()
	// pre-occupy a majority (2 of 3) with a different owner so this
	// instance can only ever win 1 of 3 backends, on every attempt.
	_, err := real[0].SetLock(ctx, "k", "someone-else", time.Minute)
	require.NoError(t, err)
	_, err = real[1].SetLock(ctx, "k", "someone-else", time.Minute)
	require.NoError(t, err)

	counting := make([]*countingLockBackend, 3)
	backends := make([]backend.LockBackend, 3)
	for i, b := range real {
		counting[i] = &countingLockBackend{LockBackend: b}
		backends[i] = counting[i]
	}

	const retryCount = 3
	rl, err := redlock.New(backends, redlock.WithRetryCount(retryCount), redlock.WithRetryDelay(10*time.Millisecond))
	require.NoError(t, err)

	require.False(t, rl.Lock(ctx, "k", 5*time.Second))

	// every attempt fans SetLock out to all three backends (quorum.WaitAll
	// waits for every task regardless of outcome), and every attempt misses
	// quorum, so Unlock's best-effort RemoveLock also fans out to all three
	// backends after every attempt — regardless of which backends actually
	// granted that attempt's lease, since the conditional delete is a no-op
	// wherever this owner never held the key: exactly retryCount
	// setLock/removeLock pairs on every backend.
	for i, c := range counting {
		require.Equal(t, int64(retryCount), c.setLockCalls.Load(), "backend[%d] setLock calls", i)
		require.Equal(t, int64(retryCount), c.removeLockCalls.Load(), "backend[%d] removeLock calls", i)
	}
}

func TestLock_TTLBelowMinimum_ReturnsFalseWithoutContactingBackends(t *testing.T) {
	backends := newTestBackends(t, 3)
	rl, err := redlock.New(backends)
	require.NoError(t, err)

	require.False(t, rl.Lock(context.Background(), "k", time.Millisecond))

	ok, err := backends[0].SetLock(context.Background(), "k", "probe", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUnlock_OnlyOwnerReleasesAcrossAllBackends(t *testing.T) {
	backends := newTestBackends(t, 3)
	rl, err := redlock.New(backends)
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, rl.Lock(ctx, "k", 5*time.Second))
	rl.Unlock(ctx, "k")

	for _, b := range backends {
		ok, err := b.SetLock(ctx, "k", "probe", time.Second)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
