package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

// RedisCache keeps cart snapshots in Redis as JSON with a jittered TTL.
type RedisCache struct {
	client    *redis.Client
	baseTTL   time.Duration
	maxJitter time.Duration
}

// NewRedisCache returns a cache expiring entries after ttl plus up to 10%
// jitter. A non-positive ttl disables writes, so entries never outlive
// their freshness window.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:    client,
		baseTTL:   ttl,
		maxJitter: ttl / 10,
	}
}

func (r *RedisCache) Get(ctx context.Context, limit int) ([]model.Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var carts []model.Cart
	if err := json.Unmarshal(data, &carts); err != nil {
		return nil, fmt.Errorf("unmarshal carts failed: %w", err)
	}
	return carts, nil
}

func (r *RedisCache) Set(ctx context.Context, limit int, carts []model.Cart) error {
	if r.baseTTL <= 0 {
		return nil
	}
	data, err := json.Marshal(carts)
	if err != nil {
		return fmt.Errorf("marshal carts failed: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(limit), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, limit int) error {
	if err := r.client.Del(ctx, cacheKey(limit)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) ttl() time.Duration {
	if r.maxJitter <= 0 {
		return r.baseTTL
	}
	return r.baseTTL + rand.N(r.maxJitter)
}

func cacheKey(limit int) string {
	return fmt.Sprintf("carts:limit:%d", limit)
}
