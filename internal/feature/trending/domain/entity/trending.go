// Package entity defines the trending domain model.
package entity

import "time"

// TrendingTicker is one market-mover entry from the quote provider.
// The list lives in Redis only; nothing here is persisted to Postgres.
type TrendingTicker struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// TrendingList is the cached snapshot with its refresh timestamp.
type TrendingList struct {
	Tickers     []TrendingTicker `json:"tickers"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}
