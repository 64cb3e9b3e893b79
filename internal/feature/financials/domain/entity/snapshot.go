package entity

import "time"

// FinancialSnapshot holds the key metrics extracted from XBRL facts for
// one filing. Metrics the issuer did not report stay nil rather than zero
// so the API can distinguish "not reported" from an actual zero.
type FinancialSnapshot struct {
	ID uint `gorm:"primaryKey"`

	// FilingID is the filing the snapshot was extracted for. One snapshot per filing.
	FilingID uint `gorm:"not null;uniqueIndex"`

	Revenue           *float64
	RevenueYoY        *float64 `gorm:"column:revenue_yoy"` // Fractional change vs the prior comparable period
	NetIncome         *float64
	NetIncomeYoY      *float64 `gorm:"column:net_income_yoy"`
	EPSDiluted        *float64 `gorm:"column:eps_diluted"`
	Assets            *float64
	Liabilities       *float64
	Equity            *float64
	Cash              *float64
	OperatingCashFlow *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
