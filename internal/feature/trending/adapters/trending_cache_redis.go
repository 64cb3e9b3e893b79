// Package adapters provides the cache and provider implementations for the trending feature.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"earningsnerd_backend/internal/feature/trending/domain/entity"
	"earningsnerd_backend/internal/feature/trending/usecase"
)

const trendingKey = "trending:tickers"

// TrendingCacheRedis implements usecase.TrendingCache on Redis. A nil
// client disables caching; every Get becomes a miss.
type TrendingCacheRedis struct {
	client *redis.Client
}

var _ usecase.TrendingCache = (*TrendingCacheRedis)(nil)

// NewTrendingCacheRedis creates a new TrendingCacheRedis.
func NewTrendingCacheRedis(client *redis.Client) *TrendingCacheRedis {
	return &TrendingCacheRedis{client: client}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *TrendingCacheRedis) Get(ctx context.Context) (*entity.TrendingList, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, trendingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var list entity.TrendingList
	if err := json.Unmarshal(raw, &list); err != nil {
		// Drop the corrupted entry and treat it as a miss.
		c.client.Del(ctx, trendingKey)
		return nil, nil
	}
	return &list, nil
}

// Set stores the snapshot with the given TTL.
func (c *TrendingCacheRedis) Set(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trendingKey, raw, ttl).Err()
}
