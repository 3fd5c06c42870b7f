package latch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/himadieievsv/distributed-locks/pkg/distributed/backend"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/ownerid"
	"github.com/himadieievsv/distributed-locks/pkg/distributed/quorum"
	"github.com/himadieievsv/distributed-locks/pkg/lifecycle/xrun"
)

// arrived is the quorum executor's per-backend result marker for a
// successfully recorded decrement.
type arrived struct{}

// opened is the quorum executor's per-backend result marker for a pub/sub
// "open" message observed on that backend's channel.
type opened struct{}

// Latch is a distributed count-down latch: count independent CountDown
// calls (from any number of instances sharing name and backends) must
// each reach quorum before Await reports SUCCESS. Await additionally
// races a pub/sub wake-up against a polling fallback, so a dropped
// publish or a subscription established after the fact cannot strand a
// waiter past a missed message.
type Latch struct {
	name        string
	channel     string
	count       int64
	maxDuration time.Duration
	backends    []backend.LatchBackend
	ownerID     string
	opts        *options

	mu           sync.Mutex
	currentCount int64
}

// New validates count, backends, maxDuration and the retry policy and
// returns a Latch. The channel name is name: one latch, one channel.
func New(name string, count int64, backends []backend.LatchBackend, opts ...Option) (*Latch, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
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
	if o.maxDuration < 2*quorum.ClockDrift(o.maxDuration) {
		return nil, ErrInvalidMaxDuration
	}

	return &Latch{
		name:         name,
		channel:      name,
		count:        count,
		maxDuration:  o.maxDuration,
		backends:     backends,
		ownerID:      ownerid.New(),
		opts:         o,
		currentCount: count,
	}, nil
}

// CountDown submits one decrement. Idempotent once this instance's local
// counter is exhausted: further calls return Success without contacting
// any backend. On a quorum miss the local counter is left untouched and a
// best-effort rollback (undo_count) is issued on every backend so a
// retried CountDown resubmits the same token rather than double-counting.
func (l *Latch) CountDown(ctx context.Context) Result {
	l.mu.Lock()
	current := l.currentCount
	l.mu.Unlock()
	if current <= 0 {
		return Success
	}

	f := func(ctx context.Context, b backend.LatchBackend) *arrived {
		ok, err := b.Count(ctx, l.name, l.channel, l.ownerID, current, l.count, l.maxDuration)
		if err != nil {
			slog.Default().Debug("latch: count failed", slog.String("name", l.name), slog.Any("error", err))
			return nil
		}
		if !ok {
			return nil
		}
		return &arrived{}
	}

	retrying, err := quorum.NewRetrying(l.backends, f, l.maxDuration, quorum.WaitAll, l.opts.retryCount, l.opts.retryDelay)
	if err != nil {
		slog.Default().Warn("latch: failed to build retrying executor", slog.Any("error", err))
		return Failed
	}

	results := retrying.Run(ctx)
	if len(results) == 0 {
		l.undoCount(ctx, current)
		return Failed
	}

	l.mu.Lock()
	l.currentCount--
	l.mu.Unlock()
	return Success
}

func (l *Latch) undoCount(ctx context.Context, count int64) {
	g, _ := xrun.NewGroup(ctx, xrun.WithName("latch-undo-count"))
	for i, b := range l.backends {
		b, i := b, i
		g.GoWithName(fmt.Sprintf("backend[%d]", i), func(ctx context.Context) error {
			if _, err := b.UndoCount(ctx, l.name, l.ownerID, count); err != nil {
				slog.Default().Warn("latch: undo_count failed", slog.String("name", l.name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Await blocks until count_down has been observed at least count times
// (across all instances sharing this latch's name and backends), or
// timeout elapses. A timeout <= 0 uses maxDuration.
func (l *Latch) Await(ctx context.Context, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = l.maxDuration
	}

	if l.fastPathOpen(ctx) {
		return Success
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pubsubDone := l.listenAny(ctx, timeout)

	pollInterval := timeout / 10
	if pollInterval < minPollInterval {
		pollInterval = minPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case results := <-pubsubDone:
			if len(results) > 0 {
				return Success
			}
			pubsubDone = nil
		case <-ticker.C:
			if l.fastPathOpen(ctx) {
				return Success
			}
		case <-ctx.Done():
			return Failed
		}
	}
}

// listenAny races a subscription on every backend's channel, via the
// quorum executor's wait-any strategy, and delivers the result on a
// buffered channel once the race settles (a message arrived on some
// backend, or ctx was canceled/timed out).
func (l *Latch) listenAny(ctx context.Context, timeout time.Duration) <-chan []opened {
	done := make(chan []opened, 1)
	go func() {
		f := func(ctx context.Context, b backend.LatchBackend) *opened {
			messages, cleanup, err := b.Listen(ctx, l.channel)
			if err != nil {
				slog.Default().Debug("latch: listen failed", slog.String("channel", l.channel), slog.Any("error", err))
				return nil
			}
			defer cleanup()
			select {
			case <-messages:
				return &opened{}
			case <-ctx.Done():
				return nil
			}
		}
		done <- quorum.Run(ctx, l.backends, f, timeout, quorum.WaitAny)
	}()
	return done
}

func (l *Latch) fastPathOpen(ctx context.Context) bool {
	n, err := l.backends[0].CheckCount(ctx, l.name)
	if err != nil {
		return false
	}
	return n >= l.count
}

// GetCount returns the number of decrements still needed before the
// threshold opens, as observed on one backend. A backend failure returns
// count, the conservative "nothing observed yet" answer.
func (l *Latch) GetCount(ctx context.Context) int64 {
	n, err := l.backends[0].CheckCount(ctx, l.name)
	if err != nil {
		return l.count
	}
	remaining := l.count - n
	if remaining < 0 {
		return 0
	}
	return remaining
}
