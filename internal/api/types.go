// Package api defines the request and response types shared by the HTTP
// transport layer. Field names and formats follow the public API contract
// under /api/v1.
package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest is the body for POST /api/v1/auth/signup.
type SignupRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// RefreshRequest is the body for POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// CompanyResponse describes a company known to the service.
type CompanyResponse struct {
	Ticker        string              `json:"ticker"`
	CIK           string              `json:"cik"`
	Name          string              `json:"name"`
	LastFetchedAt *openapi_types.Date `json:"last_fetched_at,omitempty"`
}

// FilingResponse describes a single 10-K or 10-Q filing.
type FilingResponse struct {
	ID           uint               `json:"id"`
	AccessionNo  string             `json:"accession_no"`
	Form         string             `json:"form"`
	FiledAt      openapi_types.Date `json:"filed_at"`
	PeriodEnd    openapi_types.Date `json:"period_end"`
	FiscalYear   int                `json:"fiscal_year"`
	FiscalPeriod string             `json:"fiscal_period"`
	DocumentURL  string             `json:"document_url,omitempty"`
}

// FinancialSnapshotResponse carries the XBRL metrics extracted for a filing.
// Metrics absent from the issuer's facts are null.
type FinancialSnapshotResponse struct {
	FilingID          uint     `json:"filing_id"`
	Revenue           *float64 `json:"revenue"`
	RevenueYoY        *float64 `json:"revenue_yoy"`
	NetIncome         *float64 `json:"net_income"`
	NetIncomeYoY      *float64 `json:"net_income_yoy"`
	EPSDiluted        *float64 `json:"eps_diluted"`
	Assets            *float64 `json:"assets"`
	Liabilities       *float64 `json:"liabilities"`
	Equity            *float64 `json:"equity"`
	Cash              *float64 `json:"cash"`
	OperatingCashFlow *float64 `json:"operating_cash_flow"`
}

// SummaryResponse is a generated investor summary for a filing.
type SummaryResponse struct {
	FilingID            uint     `json:"filing_id"`
	Status              string   `json:"status"`
	Model               string   `json:"model,omitempty"`
	Overview            string   `json:"overview,omitempty"`
	FinancialHighlights []string `json:"financial_highlights,omitempty"`
	Risks               []string `json:"risks,omitempty"`
	Outlook             string   `json:"outlook,omitempty"`
	GenerationMs        int64    `json:"generation_ms,omitempty"`
}

// WatchlistItemResponse is one entry of the authenticated user's watchlist.
type WatchlistItemResponse struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	AddedAt string `json:"added_at"`
}

// WatchlistAddRequest is the body for POST /api/v1/watchlist.
type WatchlistAddRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

// CheckoutRequest is the body for POST /api/v1/billing/checkout.
type CheckoutRequest struct {
	PriceID string `json:"price_id" binding:"required"`
}

// CheckoutResponse carries the Stripe-hosted URL the client redirects to.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// SubscriptionResponse describes the user's current subscription.
type SubscriptionResponse struct {
	Plan             string `json:"plan"`
	Status           string `json:"status"`
	CurrentPeriodEnd string `json:"current_period_end,omitempty"`
}

// TrendingTickerResponse is one entry of the trending list.
type TrendingTickerResponse struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// TrendingResponse wraps the trending list with its refresh timestamp.
type TrendingResponse struct {
	Tickers     []TrendingTickerResponse `json:"tickers"`
	RefreshedAt string                   `json:"refreshed_at"`
}

// WaitlistRequest is the body for POST /api/v1/waitlist.
type WaitlistRequest struct {
	Email openapi_types.Email `json:"email" binding:"required,email"`
}

// ContactRequest is the body for POST /api/v1/contact.
type ContactRequest struct {
	Name    string              `json:"name" binding:"required"`
	Email   openapi_types.Email `json:"email" binding:"required,email"`
	Message string              `json:"message" binding:"required,max=5000"`
}
