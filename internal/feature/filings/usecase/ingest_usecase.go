package usecase

import (
	"context"
	"fmt"
	"time"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/filings/domain/entity"
	"earningsnerd_backend/internal/shared/ratelimiter"
)

// FilingSource fetches a company's recent 10-K/10-Q filings from EDGAR.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FilingSource interface {
	RecentFilings(ctx context.Context, cik string) ([]entity.Filing, error)
}

// CompanyLister exposes the companies to ingest and records sync times.
type CompanyLister interface {
	ListAll(ctx context.Context) ([]companyentity.Company, error)
	MarkFetched(ctx context.Context, companyID uint, at time.Time) error
}

// IngestUsecase pulls recent filings from EDGAR and persists them.
type IngestUsecase struct {
	source  FilingSource
	filings FilingRepository
	limiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase creates a new IngestUsecase. The limiter keeps the
// batch under EDGAR's fair-access ceiling of 10 requests per second.
func NewIngestUsecase(source FilingSource, filings FilingRepository, limiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(10, time.Second)
	}
	return &IngestUsecase{source: source, filings: filings, limiter: limiter}
}

// IngestCompany fetches and upserts recent filings for one company.
// It returns the number of filings upserted.
func (iu *IngestUsecase) IngestCompany(ctx context.Context, company companyentity.Company) (int, error) {
	iu.limiter.WaitIfNeeded()

	filings, err := iu.source.RecentFilings(ctx, company.CIK)
	if err != nil {
		return 0, fmt.Errorf("fetch filings for %s: %w", company.Ticker, err)
	}

	for i := range filings {
		filings[i].CompanyID = company.ID
	}
	if err := iu.filings.UpsertBatch(ctx, filings); err != nil {
		return 0, fmt.Errorf("upsert filings for %s: %w", company.Ticker, err)
	}
	return len(filings), nil
}

// IngestAll syncs filings for every company in the lister. A single
// company failing aborts the batch so a broken EDGAR response surfaces
// instead of being skipped silently.
func (iu *IngestUsecase) IngestAll(ctx context.Context, companies CompanyLister) (int, error) {
	all, err := companies.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list companies: %w", err)
	}

	total := 0
	for _, company := range all {
		n, err := iu.IngestCompany(ctx, company)
		if err != nil {
			return total, err
		}
		total += n
		if err := companies.MarkFetched(ctx, company.ID, time.Now()); err != nil {
			return total, fmt.Errorf("mark fetched for %s: %w", company.Ticker, err)
		}
	}
	return total, nil
}
