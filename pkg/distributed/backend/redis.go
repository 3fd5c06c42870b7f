package backend

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Backend implementation over a single go-redis/v9 client.
// It satisfies LockBackend, SemaphoreBackend and LatchBackend.
type Redis struct {
	client redis.UniversalClient
}

var (
	_ LockBackend      = (*Redis)(nil)
	_ SemaphoreBackend = (*Redis)(nil)
	_ LatchBackend     = (*Redis)(nil)
)

// NewRedis wraps an existing go-redis client (*redis.Client,
// *redis.ClusterClient, or *redis.Ring — anything satisfying
// redis.UniversalClient). Listen needs Subscribe, which redis.Cmdable
// does not expose (it's also implemented by redis.Pipeliner, which can't
// subscribe), so this takes the narrower, subscribe-capable interface.
// Returns ErrNilClient if client is nil.
func NewRedis(client redis.UniversalClient) (*Redis, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Redis{client: client}, nil
}

func (r *Redis) SetLock(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *Redis) RemoveLock(ctx context.Context, key, owner string) (bool, error) {
	n, err := removeLockScript.Run(ctx, r.client, []string{key}, owner).Int64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Redis) SetSemaphoreLock(ctx context.Context, key, owner string, maxLeases int64, ttl time.Duration) (bool, error) {
	n, err := setSemaphoreLockScript.Run(ctx, r.client,
		[]string{key, markerKey(key, owner)},
		owner, maxLeases, ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *Redis) RemoveSemaphoreLock(ctx context.Context, key, owner string) (bool, error) {
	_, err := removeSemaphoreLockScript.Run(ctx, r.client,
		[]string{key, markerKey(key, owner)},
		owner,
	).Int64()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) CleanUpExpiredSemaphoreLocks(ctx context.Context, key string) (bool, error) {
	_, err := cleanupExpiredSemaphoreLocksScript.Run(ctx, r.client,
		[]string{key},
		markerKeyPrefix(key),
	).Int64()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Count(ctx context.Context, latchKey, channel, clientID string, count, initialCount int64, ttl time.Duration) (bool, error) {
	token := latchToken(clientID, count)
	_, err := countScript.Run(ctx, r.client,
		[]string{latchKey},
		token, channel, ttl.Milliseconds(), initialCount,
	).Int64()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) UndoCount(ctx context.Context, latchKey, clientID string, count int64) (int64, error) {
	token := latchToken(clientID, count)
	return r.client.SRem(ctx, latchKey, token).Result()
}

func (r *Redis) CheckCount(ctx context.Context, latchKey string) (int64, error) {
	return r.client.SCard(ctx, latchKey).Result()
}

func (r *Redis) Listen(ctx context.Context, channel string) (<-chan string, func(), error) {
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	cleanup := func() {
		close(done)
		_ = sub.Close()
	}
	return out, cleanup, nil
}

// markerKey and markerKeyPrefix compute the companion key a semaphore
// lease's cleanup marker lives at. The prefix form is needed by the cleanup
// script, which concatenates it against each set member at eval time.
func markerKey(semaphoreKey, owner string) string {
	return markerKeyPrefix(semaphoreKey) + owner
}

func markerKeyPrefix(semaphoreKey string) string {
	return semaphoreKey + ":marker:"
}

func latchToken(clientID string, count int64) string {
	return clientID + "\x00" + strconv.FormatInt(count, 10)
}
