// Package cache stores provider completions in Redis so identical prompts
// within the TTL skip the upstream call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "completion:"

// Cache is the completion store used by the orchestrator.
type Cache interface {
	GetCompletion(ctx context.Context, key string) (string, bool, error)
	StoreCompletion(ctx context.Context, key, completion string) error
}

// Key derives the cache key for a prompt sent to provider/model.
func Key(provider, model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr string, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

// GetCompletion returns the cached completion for key. A miss is not an error.
func (r *RedisClient) GetCompletion(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read completion from Redis: %w", err)
	}
	return val, true, nil
}

// StoreCompletion caches completion under key for the configured TTL.
// A zero TTL disables storing.
func (r *RedisClient) StoreCompletion(ctx context.Context, key, completion string) error {
	if r.ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key, completion, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store completion in Redis: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
