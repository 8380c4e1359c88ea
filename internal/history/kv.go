package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by KV.Get when the key is absent.
var ErrKeyNotFound = errors.New("history: key not found")

// KV is the persistent key-value store the history store flushes to. The
// store tolerates both an absent key (empty history) and a malformed value
// (discarded on load).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// RedisKV implements KV on a Redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates a Redis-backed KV store.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get retrieves the raw value for key, or ErrKeyNotFound.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores the raw value under key with no expiry.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Del removes key.
func (r *RedisKV) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
