package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLUser    = 5 * time.Minute  // profile summaries shown in conversation lists
	TTLDefault = 5 * time.Minute  // fallback
	TTLShort   = 30 * time.Second // near-real-time data
)

// Cache key prefixes
const (
	PrefixUser = "user:"
)

// Service is the Redis-backed cache used for user profile summaries.
// Every method degrades to a no-op / miss when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetUser(ctx context.Context, userID uint64, dest interface{}) error
	SetUser(ctx context.Context, userID uint64, data interface{}) error
	InvalidateUser(ctx context.Context, userID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service backed by the given client.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func userKey(userID uint64) string {
	return fmt.Sprintf("%s%d", PrefixUser, userID)
}

// GetUser reads a cached profile summary.
func (c *redisCache) GetUser(ctx context.Context, userID uint64, dest interface{}) error {
	return c.Get(ctx, userKey(userID), dest)
}

// SetUser caches a profile summary.
func (c *redisCache) SetUser(ctx context.Context, userID uint64, data interface{}) error {
	return c.Set(ctx, userKey(userID), data, TTLUser)
}

// InvalidateUser drops a cached profile summary after a profile update.
func (c *redisCache) InvalidateUser(ctx context.Context, userID uint64) error {
	return c.Delete(ctx, userKey(userID))
}
