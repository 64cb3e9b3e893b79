// Package entity defines the domain entities for the financials feature.
package entity

import "time"

// Fact is a single XBRL fact reported under a us-gaap concept.
// Duration facts (revenue, income, cash flow) carry Start and End;
// instant facts (balance sheet) carry only End.
type Fact struct {
	Unit         string    // "USD", "USD/shares", "shares"
	Value        float64   // Reported value in Unit
	Start        time.Time // Period start (zero for instant facts)
	End          time.Time // Period end / instant date
	FiscalYear   int       // Issuer fiscal year the fact was reported for
	FiscalPeriod string    // "FY", "Q1".."Q4"
	Form         string    // Form of the filing that reported the fact
	AccessionNo  string    // Accession number of that filing
}

// IsInstant reports whether the fact is a point-in-time measurement.
func (f Fact) IsInstant() bool {
	return f.Start.IsZero()
}

// FactSet maps a us-gaap concept tag to all facts reported under it.
type FactSet map[string][]Fact
