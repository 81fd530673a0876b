package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/config"
)

// Cache is a JSON read-through cache for content store responses. Every
// error is a miss from the caller's point of view; a broken cache must
// never take the catalog down with it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed cache.
func New(cfg *config.RedisConfig) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       0,
		}),
		ttl: time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

// Get loads a cached value into dest. The bool reports whether the key
// was present and decoded.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

// Set stores a value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Key builds a stable cache key from a prefix and its distinguishing
// parts, hashed so arbitrary query text stays key-safe.
func Key(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
