// Package rediscache implements the catalog listing cache on Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// RedisCatalogCache stores the JSON-encoded full listing under a single
// key with a short TTL. Mutations delete the key instead of rewriting it.
type RedisCatalogCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCatalogCache creates the cache; client must not be nil.
func NewRedisCatalogCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCatalogCache {
	if client == nil {
		panic("redis client cannot be nil for RedisCatalogCache")
	}
	if keyPrefix == "" {
		keyPrefix = "gc:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCatalogCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (c *RedisCatalogCache) listingKey() string {
	return c.keyPrefix + "games:listing"
}

// GetListing returns (nil, nil) on a miss so callers fall through to the
// database without special-casing redis.Nil.
func (c *RedisCatalogCache) GetListing(ctx context.Context) ([]domain.Game, error) {
	raw, err := c.client.Get(ctx, c.listingKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: get catalog listing: %w", err)
	}
	var games []domain.Game
	if err := json.Unmarshal(raw, &games); err != nil {
		// A corrupt entry is treated as a miss; the next SetListing
		// overwrites it.
		return nil, nil
	}
	return games, nil
}

func (c *RedisCatalogCache) SetListing(ctx context.Context, games []domain.Game) error {
	raw, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("redis: encode catalog listing: %w", err)
	}
	if err := c.client.Set(ctx, c.listingKey(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set catalog listing: %w", err)
	}
	return nil
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.listingKey()).Err(); err != nil {
		return fmt.Errorf("redis: invalidate catalog listing: %w", err)
	}
	return nil
}
