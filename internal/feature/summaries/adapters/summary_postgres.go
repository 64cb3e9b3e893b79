// Package adapters provides the repository implementations for the summaries feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"earningsnerd_backend/internal/feature/summaries/domain/entity"
	"earningsnerd_backend/internal/feature/summaries/usecase"
)

// summaryPostgres is the Postgres implementation of the SummaryRepository interface.
type summaryPostgres struct {
	db *gorm.DB
}

// Compile-time check that summaryPostgres implements SummaryRepository.
var _ usecase.SummaryRepository = (*summaryPostgres)(nil)

// NewSummaryPostgres creates a new summaryPostgres instance with the given gorm.DB connection.
func NewSummaryPostgres(db *gorm.DB) *summaryPostgres {
	return &summaryPostgres{db: db}
}

// FindByFiling retrieves the summary for a filing.
// It returns usecase.ErrSummaryNotFound when none exists.
func (r *summaryPostgres) FindByFiling(ctx context.Context, filingID uint) (*entity.Summary, error) {
	var s entity.Summary
	if err := r.db.WithContext(ctx).Where("filing_id = ?", filingID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSummaryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Save inserts or replaces the summary keyed by filing ID, so a failed
// attempt can later be overwritten by a successful one.
func (r *summaryPostgres) Save(ctx context.Context, summary *entity.Summary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "filing_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "model", "payload", "error_message", "generation_ms", "updated_at",
			}),
		}).
		Create(summary).Error
}
