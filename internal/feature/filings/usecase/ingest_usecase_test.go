package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/filings/domain/entity"
)

// mockFilingSource is a mock implementation of the FilingSource interface.
type mockFilingSource struct {
	RecentFilingsFunc func(ctx context.Context, cik string) ([]entity.Filing, error)
}

func (m *mockFilingSource) RecentFilings(ctx context.Context, cik string) ([]entity.Filing, error) {
	if m.RecentFilingsFunc != nil {
		return m.RecentFilingsFunc(ctx, cik)
	}
	return nil, nil
}

// mockCompanyLister is a mock implementation of the CompanyLister interface.
type mockCompanyLister struct {
	companies []companyentity.Company
	fetched   []uint
}

func (m *mockCompanyLister) ListAll(ctx context.Context) ([]companyentity.Company, error) {
	return m.companies, nil
}

func (m *mockCompanyLister) MarkFetched(ctx context.Context, companyID uint, at time.Time) error {
	m.fetched = append(m.fetched, companyID)
	return nil
}

// mockRateLimiter counts how often the ingest loop throttles.
type mockRateLimiter struct {
	waits int
}

func (m *mockRateLimiter) WaitIfNeeded() { m.waits++ }

func TestIngestUsecase_IngestCompany(t *testing.T) {
	ctx := context.Background()
	company := companyentity.Company{ID: 3, Ticker: "AAPL", CIK: "0000320193"}

	t.Run("stamps the company ID onto every filing", func(t *testing.T) {
		source := &mockFilingSource{
			RecentFilingsFunc: func(ctx context.Context, cik string) ([]entity.Filing, error) {
				assert.Equal(t, "0000320193", cik)
				return []entity.Filing{
					{AccessionNo: "acc-1", Form: "10-K"},
					{AccessionNo: "acc-2", Form: "10-Q"},
				}, nil
			},
		}
		var upserted []entity.Filing
		repo := &mockFilingRepository{
			UpsertBatchFunc: func(ctx context.Context, filings []entity.Filing) error {
				upserted = filings
				return nil
			},
		}
		limiter := &mockRateLimiter{}

		uc := NewIngestUsecase(source, repo, limiter)
		n, err := uc.IngestCompany(ctx, company)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, limiter.waits)
		for _, f := range upserted {
			assert.Equal(t, uint(3), f.CompanyID)
		}
	})

	t.Run("fetch failure propagates with the ticker", func(t *testing.T) {
		source := &mockFilingSource{
			RecentFilingsFunc: func(ctx context.Context, cik string) ([]entity.Filing, error) {
				return nil, errors.New("edgar http 503")
			},
		}

		uc := NewIngestUsecase(source, &mockFilingRepository{}, &mockRateLimiter{})
		_, err := uc.IngestCompany(ctx, company)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AAPL")
	})
}

func TestIngestUsecase_IngestAll(t *testing.T) {
	ctx := context.Background()

	t.Run("syncs every company and records fetch times", func(t *testing.T) {
		lister := &mockCompanyLister{
			companies: []companyentity.Company{
				{ID: 1, Ticker: "AAPL", CIK: "0000320193"},
				{ID: 2, Ticker: "MSFT", CIK: "0000789019"},
			},
		}
		source := &mockFilingSource{
			RecentFilingsFunc: func(ctx context.Context, cik string) ([]entity.Filing, error) {
				return []entity.Filing{{AccessionNo: "acc-" + cik, Form: "10-K"}}, nil
			},
		}
		limiter := &mockRateLimiter{}

		uc := NewIngestUsecase(source, &mockFilingRepository{}, limiter)
		total, err := uc.IngestAll(ctx, lister)

		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, 2, limiter.waits)
		assert.Equal(t, []uint{1, 2}, lister.fetched)
	})

	t.Run("aborts on the first failing company", func(t *testing.T) {
		lister := &mockCompanyLister{
			companies: []companyentity.Company{
				{ID: 1, Ticker: "AAPL", CIK: "0000320193"},
				{ID: 2, Ticker: "MSFT", CIK: "0000789019"},
			},
		}
		source := &mockFilingSource{
			RecentFilingsFunc: func(ctx context.Context, cik string) ([]entity.Filing, error) {
				if cik == "0000320193" {
					return nil, errors.New("edgar throttled")
				}
				return []entity.Filing{}, nil
			},
		}

		uc := NewIngestUsecase(source, &mockFilingRepository{}, &mockRateLimiter{})
		_, err := uc.IngestAll(ctx, lister)

		assert.Error(t, err)
		assert.Empty(t, lister.fetched)
	})
}
