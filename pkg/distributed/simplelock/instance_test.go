package simplelock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/simplelock"
)

func newTestBackend(t *testing.T) backend.LockBackend {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	b, err := backend.NewRedis(client)
	require.NoError(t, err)
	return b
}

func TestLockInstance_FirstOwnerWins(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.True(t, simplelock.LockInstance(ctx, b, "k", "owner-a", time.Second))
	require.False(t, simplelock.LockInstance(ctx, b, "k", "owner-b", time.Second))
}

func TestUnlockInstance_OnlyOwnerReleases(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.True(t, simplelock.LockInstance(ctx, b, "k", "owner-a", time.Second))

	simplelock.UnlockInstance(ctx, b, "k", "owner-b")
	require.False(t, simplelock.LockInstance(ctx, b, "k", "owner-c", time.Second))

	simplelock.UnlockInstance(ctx, b, "k", "owner-a")
	require.True(t, simplelock.LockInstance(ctx, b, "k", "owner-c", time.Second))
}
