package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
)

func newTestRedis(t *testing.T) (*backend.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	b, err := backend.NewRedis(client)
	require.NoError(t, err)
	return b, mr
}

func TestNewRedis_NilClient(t *testing.T) {
	_, err := backend.NewRedis(nil)
	require.ErrorIs(t, err, backend.ErrNilClient)
}

func TestSetLock_FirstWriterWins(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	ok, err := b.SetLock(ctx, "k", "owner-a", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.SetLock(ctx, "k", "owner-b", time.Second)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRemoveLock_OnlyOwnerCanRemove(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := b.SetLock(ctx, "k", "owner-a", time.Second)
	require.NoError(t, err)

	ok, err := b.RemoveLock(ctx, "k", "owner-b")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = b.RemoveLock(ctx, "k", "owner-a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.SetLock(ctx, "k", "owner-c", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSemaphoreLock_RespectsMaxLeases(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	ok1, err := b.SetSemaphoreLock(ctx, "sem", "a", 2, time.Second)
	require.NoError(t, err)
	require.True(t, ok1)

	ok2, err := b.SetSemaphoreLock(ctx, "sem", "b", 2, time.Second)
	require.NoError(t, err)
	require.True(t, ok2)

	ok3, err := b.SetSemaphoreLock(ctx, "sem", "c", 2, time.Second)
	require.NoError(t, err)
	require.False(t, ok3)
}

func TestSemaphoreLock_ReacquireByExistingOwnerIsIdempotent(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := b.SetSemaphoreLock(ctx, "sem", "a", 1, time.Second)
	require.NoError(t, err)

	ok, err := b.SetSemaphoreLock(ctx, "sem", "a", 1, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRemoveSemaphoreLock_FreesSlot(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := b.SetSemaphoreLock(ctx, "sem", "a", 1, time.Second)
	require.NoError(t, err)

	ok, err := b.SetSemaphoreLock(ctx, "sem", "b", 1, time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = b.RemoveSemaphoreLock(ctx, "sem", "a")
	require.NoError(t, err)

	ok, err = b.SetSemaphoreLock(ctx, "sem", "b", 1, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCleanUpExpiredSemaphoreLocks_RemovesStaleOwners(t *testing.T) {
	b, mr := newTestRedis(t)
	ctx := context.Background()

	_, err := b.SetSemaphoreLock(ctx, "sem", "a", 2, time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = b.CleanUpExpiredSemaphoreLocks(ctx, "sem")
	require.NoError(t, err)

	ok, err := b.SetSemaphoreLock(ctx, "sem", "c", 2, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = b.SetSemaphoreLock(ctx, "sem", "d", 2, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCount_PublishesOpenAtThreshold(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, cleanup, err := b.Listen(ctx, "latch-channel")
	require.NoError(t, err)
	defer cleanup()

	_, err = b.Count(ctx, "latch-key", "latch-channel", "client-1", 1, 1, time.Minute)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		require.Equal(t, "open", msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for open message")
	}
}

func TestCheckCount_ReflectsCardinality(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	n, err := b.CheckCount(ctx, "latch-key")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	_, err = b.Count(ctx, "latch-key", "chan", "client-1", 3, 3, time.Minute)
	require.NoError(t, err)

	n, err = b.CheckCount(ctx, "latch-key")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestUndoCount_RemovesToken(t *testing.T) {
	b, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := b.Count(ctx, "latch-key", "chan", "client-1", 3, 3, time.Minute)
	require.NoError(t, err)

	removed, err := b.UndoCount(ctx, "latch-key", "client-1", 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	n, err := b.CheckCount(ctx, "latch-key")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}
