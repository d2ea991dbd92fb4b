package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/vovakirdan/playroom/internal/scores"
)

// RedisKV keeps best-score records in Redis so several server processes can
// share them. Keys are stored under a prefix.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to addr and verifies the connection with a PING.
func OpenRedis(addr, password string, db int) (*RedisKV, error) {
	if addr == "" {
		return nil, errors.New("storage: redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis at %s: %w", addr, err)
	}

	return &RedisKV{client: client, prefix: "playroom:"}, nil
}

// WithPrefix returns a copy of r that namespaces keys under prefix.
func (r *RedisKV) WithPrefix(prefix string) *RedisKV {
	return &RedisKV{client: r.client, prefix: prefix}
}

// Get implements scores.KV.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements scores.KV. Records never expire.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", key, err)
	}
	return nil
}

// Remove implements scores.KV.
func (r *RedisKV) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("storage: redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

var _ scores.KV = (*RedisKV)(nil)
