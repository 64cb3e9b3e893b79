// Package usecase implements the business logic for company operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"earningsnerd_backend/internal/feature/companies/domain/entity"
)

const (
	// defaultSearchLimit bounds prefix-search results.
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ErrCompanyNotFound is returned when no company matches the given ticker.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepository abstracts the persistence layer for company data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CompanyRepository interface {
	// FindByTicker retrieves the company with the given ticker symbol.
	FindByTicker(ctx context.Context, ticker string) (*entity.Company, error)

	// FindByID retrieves the company with the given row ID.
	FindByID(ctx context.Context, id uint) (*entity.Company, error)

	// Search returns companies whose ticker or name matches the prefix.
	Search(ctx context.Context, query string, limit int) ([]entity.Company, error)

	// UpsertBatch inserts or updates companies keyed by CIK.
	UpsertBatch(ctx context.Context, companies []entity.Company) error

	// MarkFetched records that filings were synced for the company.
	MarkFetched(ctx context.Context, companyID uint, at time.Time) error
}

// TickerDirectory lists all SEC registrants with a ticker symbol.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerDirectory interface {
	ListCompanies(ctx context.Context) ([]entity.Company, error)
}

// CompanyUsecase provides business logic for company operations.
type CompanyUsecase struct {
	repo      CompanyRepository
	directory TickerDirectory
}

// NewCompanyUsecase creates a new CompanyUsecase with the given dependencies.
func NewCompanyUsecase(repo CompanyRepository, directory TickerDirectory) *CompanyUsecase {
	return &CompanyUsecase{repo: repo, directory: directory}
}

// GetByTicker returns the company for the given ticker, case-insensitively.
func (u *CompanyUsecase) GetByTicker(ctx context.Context, ticker string) (*entity.Company, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrCompanyNotFound
	}
	return u.repo.FindByTicker(ctx, ticker)
}

// GetByID returns the company with the given row ID.
func (u *CompanyUsecase) GetByID(ctx context.Context, id uint) (*entity.Company, error) {
	return u.repo.FindByID(ctx, id)
}

// Search returns companies matching the query prefix. An empty query
// returns no results rather than the whole table.
func (u *CompanyUsecase) Search(ctx context.Context, query string, limit int) ([]entity.Company, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Company{}, nil
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	return u.repo.Search(ctx, query, limit)
}

// SyncFromDirectory refreshes the local companies table from the EDGAR
// ticker directory. It returns the number of companies upserted.
func (u *CompanyUsecase) SyncFromDirectory(ctx context.Context) (int, error) {
	companies, err := u.directory.ListCompanies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list companies from directory: %w", err)
	}
	if len(companies) == 0 {
		return 0, nil
	}
	if err := u.repo.UpsertBatch(ctx, companies); err != nil {
		return 0, fmt.Errorf("failed to upsert companies: %w", err)
	}
	return len(companies), nil
}
