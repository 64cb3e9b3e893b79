// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"earningsnerd_backend/internal/feature/filings/domain/entity"
	"earningsnerd_backend/internal/feature/filings/usecase"
)

// CachingFilingRepository decorates a FilingRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingFilingRepository struct {
	inner     usecase.FilingRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.FilingRepository = (*CachingFilingRepository)(nil)

// NewCachingFilingRepository decorates a FilingRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "filings".
func NewCachingFilingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.FilingRepository, namespace string) *CachingFilingRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "filings"
	}
	return &CachingFilingRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch inserts or updates filings and invalidates related cache entries.
func (c *CachingFilingRepository) UpsertBatch(ctx context.Context, filings []entity.Filing) error {
	// First upsert to the underlying repository (Postgres)
	if err := c.inner.UpsertBatch(ctx, filings); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no filings
	if c.rdb == nil || len(filings) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per company)
	seen := map[uint]struct{}{}
	for _, f := range filings {
		if _, ok := seen[f.CompanyID]; ok {
			continue
		}
		seen[f.CompanyID] = struct{}{}
		_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(f.CompanyID)+"*") // Best effort: don't fail if cache deletion fails
	}
	return nil
}

// ListByCompany retrieves filings, checking cache first then falling back
// to the database.
func (c *CachingFilingRepository) ListByCompany(ctx context.Context, companyID uint, form string, limit int) ([]entity.Filing, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListByCompany(ctx, companyID, form, limit)
	}

	key := c.cacheKey(companyID, form, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Filing
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByCompany(ctx, companyID, form, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID goes straight to the database; single-row lookups by primary
// key are not worth a cache entry.
func (c *CachingFilingRepository) FindByID(ctx context.Context, id uint) (*entity.Filing, error) {
	return c.inner.FindByID(ctx, id)
}

// cacheKey generates a cache key for a specific query.
func (c *CachingFilingRepository) cacheKey(companyID uint, form string, limit int) string {
	return fmt.Sprintf("%s:%d:%s:%d",
		c.namespace,
		companyID,
		safe(form),
		limit,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingFilingRepository) cacheKeyPrefix(companyID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, companyID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingFilingRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	if s == "" {
		return "all"
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
