// Package adapters provides the repository implementations for the watchlist feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/watchlist/domain/entity"
	"earningsnerd_backend/internal/feature/watchlist/usecase"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// watchlistPostgres is the Postgres implementation of the WatchlistRepository interface.
type watchlistPostgres struct {
	db *gorm.DB
}

// Compile-time check that watchlistPostgres implements WatchlistRepository.
var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistPostgres creates a new watchlistPostgres instance with the given gorm.DB connection.
func NewWatchlistPostgres(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// Add inserts the item.
// It returns usecase.ErrAlreadyWatched when the pair already exists.
func (r *watchlistPostgres) Add(ctx context.Context, item *entity.WatchlistItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrAlreadyWatched
		}
		return err
	}
	return nil
}

// Remove deletes the user's item for the company.
// It returns usecase.ErrNotWatched when nothing was deleted.
func (r *watchlistPostgres) Remove(ctx context.Context, userID, companyID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&entity.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotWatched
	}
	return nil
}

// ListByUser returns the user's entries joined with their companies,
// newest first.
func (r *watchlistPostgres) ListByUser(ctx context.Context, userID uint) ([]usecase.Entry, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []usecase.Entry{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.CompanyID)
	}
	var companies []companyentity.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]companyentity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	entries := make([]usecase.Entry, 0, len(items))
	for _, it := range items {
		company, ok := byID[it.CompanyID]
		if !ok {
			continue // company row deleted underneath the item
		}
		entries = append(entries, usecase.Entry{Item: it, Company: company})
	}
	return entries, nil
}

// CountByUser returns the number of entries on the user's list.
func (r *watchlistPostgres) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
