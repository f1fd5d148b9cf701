package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LeaseKeyPrefix namespaces sync run leases.
const LeaseKeyPrefix = "rpa-insights:sync:lease:"

// releaseScript deletes the key only when it still holds the caller's token,
// so an expired lease re-acquired by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLeaseRepo implements core.RunLease with Redis SET NX.
type RedisLeaseRepo struct {
	client   redis.UniversalClient
	newToken func() string
}

// NewRedisLeaseRepo creates a new RedisLeaseRepo with the given Redis client.
func NewRedisLeaseRepo(client redis.UniversalClient) *RedisLeaseRepo {
	return &RedisLeaseRepo{client: client, newToken: uuid.NewString}
}

// LeaseKey returns the lease key for a sync mode.
func LeaseKey(mode string) string {
	return LeaseKeyPrefix + mode
}

// Acquire takes the lease for ttl. ok is false when the key is already held.
func (r *RedisLeaseRepo) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Second
	}

	token := r.newToken()
	// SET NX with TTL in one command; SETNX + EXPIRE would not be atomic.
	status, err := r.client.SetArgs(ctx, key, token, redis.SetArgs{Mode: "NX", TTL: ttl}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis SET NX: %w", err)
	}
	if status != "OK" {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lease if token still owns it.
func (r *RedisLeaseRepo) Release(ctx context.Context, key, token string) (bool, error) {
	if key == "" || token == "" {
		return false, errors.New("key and token are required")
	}
	n, err := releaseScript.Run(ctx, r.client, []string{key}, token).Int()
	if err != nil {
		return false, fmt.Errorf("redis release lease: %w", err)
	}
	return n > 0, nil
}
