// Package dto defines the wire types of the Yahoo Finance API.
package dto

// TrendingResponse is the shape of /v1/finance/trending/{region}.
type TrendingResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
	} `json:"finance"`
}

// QuoteResponse is the shape of /v7/finance/quote.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []Quote `json:"result"`
	} `json:"quoteResponse"`
}

// Quote is one symbol's market snapshot.
type Quote struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
}
