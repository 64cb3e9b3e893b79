// Package entity defines the domain entities for the watchlist feature.
package entity

import (
	"time"

	authentity "earningsnerd_backend/internal/feature/auth/domain/entity"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
)

// WatchlistItem links a user to a company they follow.
// A user can hold each company at most once. Items are removed with their
// user or company through the foreign key cascades.
type WatchlistItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_watchlist_user_company"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_watchlist_user_company"`
	CreatedAt time.Time

	User    authentity.User       `gorm:"constraint:OnDelete:CASCADE"`
	Company companyentity.Company `gorm:"constraint:OnDelete:CASCADE"`
}
