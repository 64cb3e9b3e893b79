// Package usecase implements the business logic for the trending feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"earningsnerd_backend/internal/feature/trending/domain/entity"
)

// ErrTrendingUnavailable is returned when neither the cache nor the quote
// provider can produce a list.
var ErrTrendingUnavailable = errors.New("trending list unavailable")

const (
	defaultCacheTTL = 15 * time.Minute
	maxTickers      = 20
)

// QuoteSource fetches the current market movers from the quote provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteSource interface {
	TrendingTickers(ctx context.Context) ([]entity.TrendingTicker, error)
}

// TrendingCache stores the trending snapshot. Get returns (nil, nil) on a
// cache miss.
type TrendingCache interface {
	Get(ctx context.Context) (*entity.TrendingList, error)
	Set(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error
}

// TrendingUsecase serves the trending-ticker list, cache first.
type TrendingUsecase struct {
	source QuoteSource
	cache  TrendingCache
	ttl    time.Duration
}

// NewTrendingUsecase creates a new TrendingUsecase with the given dependencies.
func NewTrendingUsecase(source QuoteSource, cache TrendingCache) *TrendingUsecase {
	return &TrendingUsecase{source: source, cache: cache, ttl: defaultCacheTTL}
}

// Get returns the cached trending list, refreshing it from the provider on
// a miss. Cache read failures fall through to the provider.
func (u *TrendingUsecase) Get(ctx context.Context) (*entity.TrendingList, error) {
	cached, err := u.cache.Get(ctx)
	if err != nil {
		slog.Warn("trending cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	return u.Refresh(ctx)
}

// Refresh fetches a fresh list from the quote provider and writes it to
// the cache. The cron scheduler calls this directly so requests mostly
// hit a warm cache.
func (u *TrendingUsecase) Refresh(ctx context.Context) (*entity.TrendingList, error) {
	tickers, err := u.source.TrendingTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrendingUnavailable, err)
	}
	if len(tickers) > maxTickers {
		tickers = tickers[:maxTickers]
	}

	list := &entity.TrendingList{
		Tickers:     tickers,
		RefreshedAt: time.Now().UTC(),
	}
	if err := u.cache.Set(ctx, list, u.ttl); err != nil {
		// Serving the fresh list matters more than caching it.
		slog.Warn("trending cache write failed", "error", err)
	}
	return list, nil
}
