// Package dto defines the wire types returned by the EDGAR APIs.
package dto

// TickerEntry is one registrant in company_tickers.json. The file is a
// JSON object keyed by arbitrary index strings, not an array.
type TickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}
