// Package usecase implements the business logic for the filings feature.
package usecase

import (
	"context"
	"errors"

	"earningsnerd_backend/internal/feature/filings/domain/entity"
)

const (
	// defaultListLimit bounds filings lists when the caller does not specify one.
	defaultListLimit = 40
	maxListLimit     = 200
)

// ErrFilingNotFound is returned when no filing matches the given ID.
var ErrFilingNotFound = errors.New("filing not found")

// FilingRepository abstracts the persistence layer for filings.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FilingRepository interface {
	// ListByCompany returns filings for a company, newest first.
	// form filters to "10-K" or "10-Q" when non-empty.
	ListByCompany(ctx context.Context, companyID uint, form string, limit int) ([]entity.Filing, error)

	// FindByID retrieves a filing by its row ID.
	FindByID(ctx context.Context, id uint) (*entity.Filing, error)

	// UpsertBatch inserts or updates filings keyed by accession number.
	UpsertBatch(ctx context.Context, filings []entity.Filing) error
}

// FilingsUsecase provides read access to indexed filings.
type FilingsUsecase struct {
	repo FilingRepository
}

// NewFilingsUsecase creates a new FilingsUsecase with the given repository.
func NewFilingsUsecase(repo FilingRepository) *FilingsUsecase {
	return &FilingsUsecase{repo: repo}
}

// ListByCompany returns a company's filings, optionally filtered by form.
// Unknown forms are rejected rather than silently returning everything.
func (u *FilingsUsecase) ListByCompany(ctx context.Context, companyID uint, form string, limit int) ([]entity.Filing, error) {
	switch form {
	case "", "10-K", "10-Q":
	default:
		return nil, errors.New("form must be 10-K or 10-Q")
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return u.repo.ListByCompany(ctx, companyID, form, limit)
}

// GetByID returns a single filing.
func (u *FilingsUsecase) GetByID(ctx context.Context, id uint) (*entity.Filing, error) {
	return u.repo.FindByID(ctx, id)
}
