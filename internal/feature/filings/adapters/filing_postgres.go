// Package adapters provides the repository implementations for the filings feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"earningsnerd_backend/internal/feature/filings/domain/entity"
	"earningsnerd_backend/internal/feature/filings/usecase"
)

// filingPostgres is the Postgres implementation of the FilingRepository interface.
type filingPostgres struct {
	db *gorm.DB
}

// Compile-time check that filingPostgres implements FilingRepository.
var _ usecase.FilingRepository = (*filingPostgres)(nil)

// NewFilingPostgres creates a new filingPostgres instance with the given gorm.DB connection.
func NewFilingPostgres(db *gorm.DB) *filingPostgres {
	return &filingPostgres{db: db}
}

// ListByCompany returns the company's filings, newest filed first.
func (r *filingPostgres) ListByCompany(ctx context.Context, companyID uint, form string, limit int) ([]entity.Filing, error) {
	q := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("filed_at DESC").
		Limit(limit)
	if form != "" {
		q = q.Where("form = ?", form)
	}

	var filings []entity.Filing
	if err := q.Find(&filings).Error; err != nil {
		return nil, err
	}
	return filings, nil
}

// FindByID retrieves a filing by row ID.
// It returns usecase.ErrFilingNotFound when the filing does not exist.
func (r *filingPostgres) FindByID(ctx context.Context, id uint) (*entity.Filing, error) {
	var f entity.Filing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFilingNotFound
		}
		return nil, err
	}
	return &f, nil
}

// UpsertBatch inserts filings, refreshing mutable columns on accession
// number conflicts. Re-ingesting the same period is a no-op apart from
// updated_at.
func (r *filingPostgres) UpsertBatch(ctx context.Context, filings []entity.Filing) error {
	if len(filings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "accession_no"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"form", "filed_at", "period_end", "fiscal_year", "fiscal_period",
				"primary_doc_url", "updated_at",
			}),
		}).
		CreateInBatches(filings, 200).Error
}
