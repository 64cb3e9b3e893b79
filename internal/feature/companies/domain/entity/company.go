// Package entity defines the domain entities for the companies feature.
package entity

import "time"

// Company represents an SEC registrant tracked by the service.
type Company struct {
	ID uint `gorm:"primaryKey"`

	// Ticker is the exchange symbol. It is unique.
	Ticker string `gorm:"size:20;not null;uniqueIndex"`

	// CIK is the SEC registrant identifier, zero-padded to 10 digits.
	// EDGAR endpoints are keyed by CIK, not ticker.
	CIK string `gorm:"size:10;not null;uniqueIndex"`

	// Name is the registrant's legal name as published by EDGAR.
	Name string `gorm:"size:255;not null"`

	// LastFetchedAt is the last time filings were synced for this company.
	LastFetchedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
