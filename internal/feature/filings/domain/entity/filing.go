// Package entity defines the domain entities for the filings feature.
package entity

import "time"

// Filing represents a single 10-K or 10-Q filing indexed from EDGAR.
type Filing struct {
	ID uint `gorm:"primaryKey"`

	// CompanyID is the owning company row.
	CompanyID uint `gorm:"not null;index"`

	// AccessionNo is EDGAR's unique filing identifier
	// (e.g. "0000320193-23-000106").
	AccessionNo string `gorm:"size:25;not null;uniqueIndex"`

	// Form is the filing type: "10-K" or "10-Q".
	Form string `gorm:"size:10;not null;index"`

	// FiledAt is the date the filing was accepted by EDGAR.
	FiledAt time.Time `gorm:"not null"`

	// PeriodEnd is the fiscal period the filing reports on.
	PeriodEnd time.Time `gorm:"not null"`

	// FiscalYear and FiscalPeriod identify the reporting period
	// ("FY" for annual, "Q1".."Q3" for quarters).
	FiscalYear   int    `gorm:"not null"`
	FiscalPeriod string `gorm:"size:4;not null"`

	// PrimaryDocURL points at the primary document on sec.gov.
	PrimaryDocURL string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAnnual reports whether the filing is a 10-K.
func (f *Filing) IsAnnual() bool {
	return f.Form == "10-K"
}
