package lock

import (
    "context"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisLock shares the dispatch guard across processes using SETNX with a
// TTL. Used when several API replicas can receive dispatch calls.
type RedisLock struct {
    client *redis.Client
    ttl    time.Duration
}

func NewRedisLock(client *redis.Client, ttl time.Duration) *RedisLock {
    return &RedisLock{client: client, ttl: ttl}
}

func (l *RedisLock) TryAcquire(ctx context.Context, key string) (bool, error) {
    ok, err := l.client.SetNX(ctx, buildLockKey(key), time.Now().Unix(), l.ttl).Result()
    if err != nil {
        return false, fmt.Errorf("acquire dispatch lock: %w", err)
    }
    return ok, nil
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
    if err := l.client.Del(ctx, buildLockKey(key)).Err(); err != nil {
        return fmt.Errorf("release dispatch lock: %w", err)
    }
    return nil
}

func buildLockKey(campaignID string) string {
    return "dispatch:lock:" + campaignID
}

var _ DispatchLock = (*RedisLock)(nil)
