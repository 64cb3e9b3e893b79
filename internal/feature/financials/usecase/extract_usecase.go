// Package usecase implements the XBRL extraction logic for the financials feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"earningsnerd_backend/internal/feature/financials/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a filing.
var ErrSnapshotNotFound = errors.New("financial snapshot not found")

// FactsSource fetches a company's XBRL facts from EDGAR.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FactsSource interface {
	CompanyFacts(ctx context.Context, cik string) (entity.FactSet, error)
}

// SnapshotRepository abstracts the persistence layer for snapshots.
type SnapshotRepository interface {
	// FindByFiling retrieves the snapshot for a filing.
	// It returns ErrSnapshotNotFound when none exists.
	FindByFiling(ctx context.Context, filingID uint) (*entity.FinancialSnapshot, error)

	// Upsert inserts or replaces the snapshot keyed by filing ID.
	Upsert(ctx context.Context, snapshot *entity.FinancialSnapshot) error
}

// Issuers tag the same economic quantity under different us-gaap concepts,
// so each metric carries an ordered candidate list. The first concept
// with a usable fact wins.
var (
	revenueConcepts = []string{
		"Revenues",
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"RevenueFromContractWithCustomerIncludingAssessedTax",
		"SalesRevenueNet",
	}
	netIncomeConcepts = []string{
		"NetIncomeLoss",
		"ProfitLoss",
	}
	epsDilutedConcepts = []string{
		"EarningsPerShareDiluted",
		"EarningsPerShareBasicAndDiluted",
	}
	assetsConcepts      = []string{"Assets"}
	liabilitiesConcepts = []string{"Liabilities"}
	equityConcepts      = []string{
		"StockholdersEquity",
		"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	}
	cashConcepts = []string{
		"CashAndCashEquivalentsAtCarryingValue",
		"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	}
	operatingCashFlowConcepts = []string{
		"NetCashProvidedByUsedInOperatingActivities",
		"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
	}
)

// Units the extractor prefers when a concept reports several.
const (
	unitUSD         = "USD"
	unitUSDPerShare = "USD/shares"
)

// ExtractUsecase extracts financial snapshots from companyfacts data,
// serving persisted snapshots when they already exist.
type ExtractUsecase struct {
	source    FactsSource
	snapshots SnapshotRepository
}

// NewExtractUsecase creates a new ExtractUsecase with the given dependencies.
func NewExtractUsecase(source FactsSource, snapshots SnapshotRepository) *ExtractUsecase {
	return &ExtractUsecase{source: source, snapshots: snapshots}
}

// GetSnapshot returns the financial snapshot for a filing, extracting and
// persisting it on first access.
func (u *ExtractUsecase) GetSnapshot(ctx context.Context, filing *filingentity.Filing, cik string) (*entity.FinancialSnapshot, error) {
	snapshot, err := u.snapshots.FindByFiling(ctx, filing.ID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, ErrSnapshotNotFound) {
		return nil, err
	}

	facts, err := u.source.CompanyFacts(ctx, cik)
	if err != nil {
		return nil, fmt.Errorf("fetch company facts: %w", err)
	}

	snapshot = Extract(facts, filing)
	if err := u.snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}
	return snapshot, nil
}

// Extract builds a snapshot for the filing from the full fact set.
func Extract(facts entity.FactSet, filing *filingentity.Filing) *entity.FinancialSnapshot {
	s := &entity.FinancialSnapshot{FilingID: filing.ID}

	s.Revenue = durationValue(facts, revenueConcepts, unitUSD, filing, 0)
	s.RevenueYoY = yoy(s.Revenue, durationValue(facts, revenueConcepts, unitUSD, filing, 1))
	s.NetIncome = durationValue(facts, netIncomeConcepts, unitUSD, filing, 0)
	s.NetIncomeYoY = yoy(s.NetIncome, durationValue(facts, netIncomeConcepts, unitUSD, filing, 1))
	s.EPSDiluted = durationValue(facts, epsDilutedConcepts, unitUSDPerShare, filing, 0)
	s.OperatingCashFlow = durationValue(facts, operatingCashFlowConcepts, unitUSD, filing, 0)

	s.Assets = instantValue(facts, assetsConcepts, unitUSD, filing)
	s.Liabilities = instantValue(facts, liabilitiesConcepts, unitUSD, filing)
	s.Equity = instantValue(facts, equityConcepts, unitUSD, filing)
	s.Cash = instantValue(facts, cashConcepts, unitUSD, filing)

	return s
}

// durationValue selects a duration fact for the filing's fiscal period,
// shifted back by yearsBack fiscal years for prior-period comparisons.
// Selection order within a concept:
//  1. exact accession match (the fact came from this very filing),
//  2. fiscal year + fiscal period match,
//  3. period-end date match.
func durationValue(facts entity.FactSet, concepts []string, unit string, filing *filingentity.Filing, yearsBack int) *float64 {
	fy := filing.FiscalYear - yearsBack
	end := filing.PeriodEnd.AddDate(-yearsBack, 0, 0)

	for _, concept := range concepts {
		candidates := preferUnit(facts[concept], unit)
		var byPeriod, byEnd *entity.Fact
		for i := range candidates {
			f := &candidates[i]
			if f.IsInstant() {
				continue
			}
			if yearsBack == 0 && f.AccessionNo == filing.AccessionNo {
				return &f.Value
			}
			if f.FiscalYear == fy && f.FiscalPeriod == filing.FiscalPeriod && byPeriod == nil {
				byPeriod = f
			}
			if sameDay(f.End, end) && plausibleDuration(f, filing.IsAnnual()) && byEnd == nil {
				byEnd = f
			}
		}
		if byPeriod != nil {
			return &byPeriod.Value
		}
		if byEnd != nil {
			return &byEnd.Value
		}
	}
	return nil
}

// instantValue selects a balance-sheet fact dated at the filing's period
// end. Instant facts reappear across filings, so the accession number is
// only a preference, not a requirement.
func instantValue(facts entity.FactSet, concepts []string, unit string, filing *filingentity.Filing) *float64 {
	for _, concept := range concepts {
		candidates := preferUnit(facts[concept], unit)
		var match *entity.Fact
		for i := range candidates {
			f := &candidates[i]
			if !f.IsInstant() || !sameDay(f.End, filing.PeriodEnd) {
				continue
			}
			if f.AccessionNo == filing.AccessionNo {
				return &f.Value
			}
			if match == nil {
				match = f
			}
		}
		if match != nil {
			return &match.Value
		}
	}
	return nil
}

// preferUnit narrows candidates to the wanted unit. Foreign private
// issuers report in their home currency only, so when no fact carries
// the wanted unit the full list is kept.
func preferUnit(candidates []entity.Fact, unit string) []entity.Fact {
	matched := make([]entity.Fact, 0, len(candidates))
	for _, f := range candidates {
		if f.Unit == unit {
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return candidates
	}
	return matched
}

// plausibleDuration filters out year-to-date facts that share a quarter's
// end date, and quarterly facts that share an annual end date.
func plausibleDuration(f *entity.Fact, annual bool) bool {
	days := f.End.Sub(f.Start).Hours() / 24
	if annual {
		return days > 300 && days < 400
	}
	return days > 60 && days < 120
}

// sameDay compares two dates ignoring the time component.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// yoy computes the fractional change between current and prior values.
// It returns nil when either side is missing or the prior value is zero.
func yoy(current, prior *float64) *float64 {
	if current == nil || prior == nil || *prior == 0 {
		return nil
	}
	v := (*current - *prior) / abs(*prior)
	return &v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
