package dto

// CompanyFactsResponse is the shape of
// data.sec.gov/api/xbrl/companyfacts/CIK#.json, trimmed to the us-gaap
// taxonomy the extractor reads.
type CompanyFactsResponse struct {
	CIK   int64                      `json:"cik"`
	Facts map[string]map[string]Fact `json:"facts"` // taxonomy -> concept -> fact
}

// Fact groups every reported unit for one concept.
type Fact struct {
	Label string                `json:"label"`
	Units map[string][]FactItem `json:"units"` // unit (e.g. "USD") -> reported values
}

// FactItem is a single reported value of a concept.
type FactItem struct {
	Start        string  `json:"start,omitempty"` // Period start; absent for instant facts
	End          string  `json:"end"`
	Value        float64 `json:"val"`
	FiscalYear   int     `json:"fy"`
	FiscalPeriod string  `json:"fp"`
	Form         string  `json:"form"`
	AccessionNo  string  `json:"accn"`
	Frame        string  `json:"frame,omitempty"`
}
