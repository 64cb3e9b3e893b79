package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"earningsnerd_backend/internal/feature/summaries/usecase"
	"earningsnerd_backend/internal/platform/cache"
)

// QuotaRedis counts summary generations per user per calendar month using
// an INCR counter that expires at the month boundary.
type QuotaRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check that QuotaRedis implements QuotaStore.
var _ usecase.QuotaStore = (*QuotaRedis)(nil)

// NewQuotaRedis creates a new QuotaRedis instance.
// If prefix is empty, it uses "summaries:quota".
func NewQuotaRedis(client *redis.Client, prefix string) *QuotaRedis {
	if prefix == "" {
		prefix = "summaries:quota"
	}
	return &QuotaRedis{client: client, prefix: prefix}
}

// key generates the per-user counter key for the current month.
func (q *QuotaRedis) key(userID uint, now time.Time) string {
	return fmt.Sprintf("%s:%d:%s", q.prefix, userID, now.UTC().Format("2006-01"))
}

// Increment adds one generation and returns the new count. The TTL is set
// on first increment so the counter dies with the month.
func (q *QuotaRedis) Increment(ctx context.Context, userID uint) (int64, error) {
	if q.client == nil {
		return 0, fmt.Errorf("quota store not configured")
	}

	now := time.Now()
	key := q.key(userID, now)

	count, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := q.client.Expire(ctx, key, cache.TimeUntilMonthEnd(now)).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
