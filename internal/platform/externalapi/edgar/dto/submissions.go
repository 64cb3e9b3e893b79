package dto

// SubmissionsResponse is the shape of data.sec.gov/submissions/CIK#.json.
// The "recent" block is column-oriented: index i across the slices
// describes one filing.
type SubmissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds the parallel column arrays of the recent filings index.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	Form            []string `json:"form"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	PrimaryDocument []string `json:"primaryDocument"`
}
