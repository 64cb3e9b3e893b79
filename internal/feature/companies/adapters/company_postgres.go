// Package adapters provides the repository implementations for the companies feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/companies/usecase"
)

// companyPostgres is the Postgres implementation of the CompanyRepository interface.
type companyPostgres struct {
	db *gorm.DB
}

// Compile-time check that companyPostgres implements CompanyRepository.
var _ usecase.CompanyRepository = (*companyPostgres)(nil)

// NewCompanyPostgres creates a new companyPostgres instance with the given gorm.DB connection.
func NewCompanyPostgres(db *gorm.DB) *companyPostgres {
	return &companyPostgres{db: db}
}

// FindByTicker retrieves the company with the given ticker.
// It returns usecase.ErrCompanyNotFound when the company does not exist.
func (r *companyPostgres) FindByTicker(ctx context.Context, ticker string) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByID retrieves the company with the given row ID.
// It returns usecase.ErrCompanyNotFound when the company does not exist.
func (r *companyPostgres) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Search returns companies whose ticker or name starts with the query,
// tickers first.
func (r *companyPostgres) Search(ctx context.Context, query string, limit int) ([]entity.Company, error) {
	var companies []entity.Company
	pattern := query + "%"
	if err := r.db.WithContext(ctx).
		Where("ticker ILIKE ? OR name ILIKE ?", pattern, pattern).
		Order("ticker ASC").
		Limit(limit).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// UpsertBatch inserts companies in chunks, updating ticker and name on
// CIK conflicts so renames and ticker changes propagate.
func (r *companyPostgres) UpsertBatch(ctx context.Context, companies []entity.Company) error {
	if len(companies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cik"}},
			DoUpdates: clause.AssignmentColumns([]string{"ticker", "name", "updated_at"}),
		}).
		CreateInBatches(companies, 500).Error
}

// ListAll returns every tracked company ordered by ticker. The filings
// ingest batch iterates this list.
func (r *companyPostgres) ListAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// MarkFetched records the last filings sync time for the company.
func (r *companyPostgres) MarkFetched(ctx context.Context, companyID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ?", companyID).
		Update("last_fetched_at", at).Error
}
