package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"earningsnerd_backend/internal/feature/trending/domain/entity"
)

// mockQuoteSource is a mock implementation of the QuoteSource interface.
type mockQuoteSource struct {
	TrendingTickersFunc func(ctx context.Context) ([]entity.TrendingTicker, error)
	calls               int
}

func (m *mockQuoteSource) TrendingTickers(ctx context.Context) ([]entity.TrendingTicker, error) {
	m.calls++
	if m.TrendingTickersFunc != nil {
		return m.TrendingTickersFunc(ctx)
	}
	return []entity.TrendingTicker{{Ticker: "AAPL", Price: 231.5, ChangePercent: 1.2, Volume: 51000000}}, nil
}

// mockTrendingCache is a mock implementation of the TrendingCache interface.
type mockTrendingCache struct {
	GetFunc func(ctx context.Context) (*entity.TrendingList, error)
	SetFunc func(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error
}

func (m *mockTrendingCache) Get(ctx context.Context) (*entity.TrendingList, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, nil
}

func (m *mockTrendingCache) Set(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, list, ttl)
	}
	return nil
}

func TestTrendingUsecase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the provider", func(t *testing.T) {
		cached := &entity.TrendingList{
			Tickers:     []entity.TrendingTicker{{Ticker: "NVDA"}},
			RefreshedAt: time.Now().UTC(),
		}
		source := &mockQuoteSource{
			TrendingTickersFunc: func(ctx context.Context) ([]entity.TrendingTicker, error) {
				t.Fatal("provider must not be called on a cache hit")
				return nil, nil
			},
		}
		cache := &mockTrendingCache{
			GetFunc: func(ctx context.Context) (*entity.TrendingList, error) { return cached, nil },
		}

		uc := NewTrendingUsecase(source, cache)
		got, err := uc.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("cache miss refreshes from the provider and caches", func(t *testing.T) {
		var written *entity.TrendingList
		cache := &mockTrendingCache{
			SetFunc: func(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error {
				written = list
				assert.Equal(t, defaultCacheTTL, ttl)
				return nil
			},
		}
		source := &mockQuoteSource{}

		uc := NewTrendingUsecase(source, cache)
		got, err := uc.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, source.calls)
		assert.Len(t, got.Tickers, 1)
		assert.Equal(t, "AAPL", got.Tickers[0].Ticker)
		assert.False(t, got.RefreshedAt.IsZero())
		assert.Equal(t, got, written)
	})

	t.Run("cache read failure falls through to the provider", func(t *testing.T) {
		cache := &mockTrendingCache{
			GetFunc: func(ctx context.Context) (*entity.TrendingList, error) {
				return nil, errors.New("redis down")
			},
		}
		source := &mockQuoteSource{}

		uc := NewTrendingUsecase(source, cache)
		got, err := uc.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, source.calls)
		assert.NotNil(t, got)
	})
}

func TestTrendingUsecase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("truncates to the display limit", func(t *testing.T) {
		source := &mockQuoteSource{
			TrendingTickersFunc: func(ctx context.Context) ([]entity.TrendingTicker, error) {
				tickers := make([]entity.TrendingTicker, 35)
				for i := range tickers {
					tickers[i] = entity.TrendingTicker{Ticker: fmt.Sprintf("T%02d", i)}
				}
				return tickers, nil
			},
		}

		uc := NewTrendingUsecase(source, &mockTrendingCache{})
		got, err := uc.Refresh(ctx)

		assert.NoError(t, err)
		assert.Len(t, got.Tickers, maxTickers)
		assert.Equal(t, "T00", got.Tickers[0].Ticker)
	})

	t.Run("provider failure maps to ErrTrendingUnavailable", func(t *testing.T) {
		source := &mockQuoteSource{
			TrendingTickersFunc: func(ctx context.Context) ([]entity.TrendingTicker, error) {
				return nil, errors.New("quote api down")
			},
		}

		uc := NewTrendingUsecase(source, &mockTrendingCache{})
		_, err := uc.Refresh(ctx)
		assert.ErrorIs(t, err, ErrTrendingUnavailable)
	})

	t.Run("cache write failure still returns the fresh list", func(t *testing.T) {
		cache := &mockTrendingCache{
			SetFunc: func(ctx context.Context, list *entity.TrendingList, ttl time.Duration) error {
				return errors.New("redis down")
			},
		}

		uc := NewTrendingUsecase(&mockQuoteSource{}, cache)
		got, err := uc.Refresh(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, got)
	})
}
