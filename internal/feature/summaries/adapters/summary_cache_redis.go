package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"earningsnerd_backend/internal/feature/summaries/domain/entity"
	"earningsnerd_backend/internal/feature/summaries/usecase"
)

// SummaryCacheRedis caches completed summaries in Redis. A nil client
// disables caching; every method then becomes a no-op.
type SummaryCacheRedis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// Compile-time check that SummaryCacheRedis implements SummaryCache.
var _ usecase.SummaryCache = (*SummaryCacheRedis)(nil)

// NewSummaryCacheRedis creates a new SummaryCacheRedis instance.
// If ttl is 0, it defaults to 24 hours. If prefix is empty, it uses "summaries".
func NewSummaryCacheRedis(client *redis.Client, ttl time.Duration, prefix string) *SummaryCacheRedis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if prefix == "" {
		prefix = "summaries"
	}
	return &SummaryCacheRedis{client: client, ttl: ttl, prefix: prefix}
}

// key generates the cache key for a filing's summary.
func (c *SummaryCacheRedis) key(filingID uint) string {
	return fmt.Sprintf("%s:%d", c.prefix, filingID)
}

// Get returns the cached summary or (nil, nil) on a miss.
func (c *SummaryCacheRedis) Get(ctx context.Context, filingID uint) (*entity.Summary, error) {
	if c.client == nil {
		return nil, nil
	}

	b, err := c.client.Get(ctx, c.key(filingID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var s entity.Summary
	if err := json.Unmarshal(b, &s); err != nil {
		// Drop the corrupted entry and treat as a miss.
		_ = c.client.Del(ctx, c.key(filingID)).Err()
		return nil, nil
	}
	return &s, nil
}

// Set stores a completed summary. Non-completed summaries are never
// cached so failures do not mask a later successful generation.
func (c *SummaryCacheRedis) Set(ctx context.Context, summary *entity.Summary) error {
	if c.client == nil || summary.Status != entity.StatusCompleted {
		return nil
	}

	b, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return c.client.Set(ctx, c.key(summary.FilingID), b, c.ttl).Err()
}
