// Package adapters provides the repository implementations for the financials feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"earningsnerd_backend/internal/feature/financials/domain/entity"
	"earningsnerd_backend/internal/feature/financials/usecase"
)

// snapshotPostgres is the Postgres implementation of the SnapshotRepository interface.
type snapshotPostgres struct {
	db *gorm.DB
}

// Compile-time check that snapshotPostgres implements SnapshotRepository.
var _ usecase.SnapshotRepository = (*snapshotPostgres)(nil)

// NewSnapshotPostgres creates a new snapshotPostgres instance with the given gorm.DB connection.
func NewSnapshotPostgres(db *gorm.DB) *snapshotPostgres {
	return &snapshotPostgres{db: db}
}

// FindByFiling retrieves the snapshot for a filing.
// It returns usecase.ErrSnapshotNotFound when none exists.
func (r *snapshotPostgres) FindByFiling(ctx context.Context, filingID uint) (*entity.FinancialSnapshot, error) {
	var s entity.FinancialSnapshot
	if err := r.db.WithContext(ctx).Where("filing_id = ?", filingID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert inserts or replaces the snapshot keyed by filing ID.
func (r *snapshotPostgres) Upsert(ctx context.Context, snapshot *entity.FinancialSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "filing_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"revenue", "revenue_yoy", "net_income", "net_income_yoy",
				"eps_diluted", "assets", "liabilities", "equity", "cash",
				"operating_cash_flow", "updated_at",
			}),
		}).
		Create(snapshot).Error
}
