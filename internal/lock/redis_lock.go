package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "carhive:lock:car:"
	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only if this holder still owns it, so a
// slow operation that outlives the TTL cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes per-car booking writes across application
// instances with a SET NX lease.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (rl *RedisLocker) Acquire(ctx context.Context, carID string) (func(), error) {
	key := lockKeyPrefix + carID
	token := uuid.New().String()

	for {
		ok, err := rl.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire car lock: %v", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for car lock: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		// Best effort: the TTL reclaims the lock if the release is lost.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, rl.client, []string{key}, token).Err()
	}
	return release, nil
}
