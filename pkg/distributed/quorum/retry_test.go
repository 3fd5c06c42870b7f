package quorum_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/quorum"
)

func TestNewRetrying_RejectsInvalidRetryCount(t *testing.T) {
	_, err := quorum.NewRetrying[int, int](nil, nil, time.Second, quorum.WaitAll, 0, time.Millisecond)
	require.ErrorIs(t, err, quorum.ErrInvalidRetryCount)
}

func TestNewRetrying_RejectsInvalidRetryDelay(t *testing.T) {
	_, err := quorum.NewRetrying[int, int](nil, nil, time.Second, quorum.WaitAll, 3, 0)
	require.ErrorIs(t, err, quorum.ErrInvalidRetryDelay)
}

func TestRetrying_RetriesUntilQuorumReached(t *testing.T) {
	backends := []int{1, 2, 3}
	var attempt atomic.Int64

	f := func(_ context.Context, b int) *int {
		if attempt.Load() < 2 {
			return nil
		}
		return &b
	}

	wrapped := func(ctx context.Context, b int) *int {
		defer attempt.Add(1)
		return f(ctx, b)
	}
	r, err := quorum.NewRetrying(backends, wrapped, time.Second, quorum.WaitAll, 5, time.Millisecond)
	require.NoError(t, err)

	results := r.Run(context.Background())
	require.Len(t, results, 3)
}

func TestRetrying_ExhaustsAttemptsAndReturnsNil(t *testing.T) {
	backends := []int{1, 2, 3}
	f := func(_ context.Context, b int) *int { return nil }

	r, err := quorum.NewRetrying(backends, f, time.Second, quorum.WaitAll, 3, time.Millisecond)
	require.NoError(t, err)

	results := r.Run(context.Background())
	require.Nil(t, results)
}
