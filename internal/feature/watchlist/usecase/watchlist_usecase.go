// Package usecase implements the business logic for the watchlist feature.
package usecase

import (
	"context"
	"errors"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/watchlist/domain/entity"
)

// maxWatchlistSize caps entries per user.
const maxWatchlistSize = 100

var (
	// ErrAlreadyWatched is returned when the company is already on the user's list.
	ErrAlreadyWatched = errors.New("company already on watchlist")

	// ErrNotWatched is returned when removing a company that is not on the list.
	ErrNotWatched = errors.New("company not on watchlist")

	// ErrWatchlistFull is returned when the user's list is at capacity.
	ErrWatchlistFull = errors.New("watchlist is full")
)

// Entry pairs a watchlist row with its company for list responses.
type Entry struct {
	Item    entity.WatchlistItem
	Company companyentity.Company
}

// WatchlistRepository abstracts the persistence layer for watchlist items.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Add inserts the item. It returns ErrAlreadyWatched on duplicates.
	Add(ctx context.Context, item *entity.WatchlistItem) error

	// Remove deletes the user's item for the company.
	// It returns ErrNotWatched when no such item exists.
	Remove(ctx context.Context, userID, companyID uint) error

	// ListByUser returns the user's entries with companies, newest first.
	ListByUser(ctx context.Context, userID uint) ([]Entry, error)

	// CountByUser returns the number of entries on the user's list.
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// CompanyLookup resolves tickers to companies.
type CompanyLookup interface {
	GetByTicker(ctx context.Context, ticker string) (*companyentity.Company, error)
}

// WatchlistUsecase provides business logic for watchlist operations.
type WatchlistUsecase struct {
	repo      WatchlistRepository
	companies CompanyLookup
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given dependencies.
func NewWatchlistUsecase(repo WatchlistRepository, companies CompanyLookup) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, companies: companies}
}

// Add puts the ticker's company on the user's watchlist.
func (u *WatchlistUsecase) Add(ctx context.Context, userID uint, ticker string) error {
	company, err := u.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return err
	}

	count, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count >= maxWatchlistSize {
		return ErrWatchlistFull
	}

	return u.repo.Add(ctx, &entity.WatchlistItem{UserID: userID, CompanyID: company.ID})
}

// Remove takes the ticker's company off the user's watchlist.
func (u *WatchlistUsecase) Remove(ctx context.Context, userID uint, ticker string) error {
	company, err := u.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return err
	}
	return u.repo.Remove(ctx, userID, company.ID)
}

// List returns the user's watchlist entries, newest first.
func (u *WatchlistUsecase) List(ctx context.Context, userID uint) ([]Entry, error) {
	return u.repo.ListByUser(ctx, userID)
}
