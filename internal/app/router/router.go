// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "earningsnerd_backend/internal/feature/auth/transport/handler"
	billinghandler "earningsnerd_backend/internal/feature/billing/transport/handler"
	companyhandler "earningsnerd_backend/internal/feature/companies/transport/handler"
	filinghandler "earningsnerd_backend/internal/feature/filings/transport/handler"
	financialshandler "earningsnerd_backend/internal/feature/financials/transport/handler"
	intakehandler "earningsnerd_backend/internal/feature/intake/transport/handler"
	summaryhandler "earningsnerd_backend/internal/feature/summaries/transport/handler"
	trendinghandler "earningsnerd_backend/internal/feature/trending/transport/handler"
	watchlisthandler "earningsnerd_backend/internal/feature/watchlist/transport/handler"
	jwtmw "earningsnerd_backend/internal/platform/jwt"

	healthhandler "earningsnerd_backend/internal/platform/http/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *authhandler.AuthHandler
	Companies     *companyhandler.CompanyHandler
	Filings       *filinghandler.FilingHandler
	Financials    *financialshandler.FinancialsHandler
	Summaries     *summaryhandler.SummaryHandler
	Watchlist     *watchlisthandler.WatchlistHandler
	Billing       *billinghandler.BillingHandler
	StripeWebhook *billinghandler.StripeWebhookHandler
	Trending      *trendinghandler.TrendingHandler
	Intake        *intakehandler.IntakeHandler
	ResendWebhook *intakehandler.ResendWebhookHandler
}

// NewRouter builds the Gin engine with CORS and all routes mounted under
// /api/v1.
func NewRouter(h Handlers, corsCfg cors.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", healthhandler.Health)

	v1 := r.Group("/api/v1")

	// No authentication required
	v1.POST("/auth/signup", h.Auth.Signup)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/trending", h.Trending.List)
	v1.POST("/waitlist", h.Intake.Waitlist)
	v1.POST("/contact", h.Intake.Contact)

	// Webhooks authenticate with their own signatures, not JWTs
	v1.POST("/webhooks/stripe", h.StripeWebhook.Handle)
	v1.POST("/webhooks/resend", h.ResendWebhook.Handle)

	// Authenticated routes
	auth := v1.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/companies", h.Companies.Search)
		auth.GET("/companies/:ticker", h.Companies.Get)
		auth.GET("/companies/:ticker/filings", h.Filings.ListByTicker)

		auth.GET("/filings/:id/financials", h.Financials.Get)
		auth.GET("/filings/:id/summary", h.Summaries.Get)
		auth.POST("/filings/:id/summary", h.Summaries.Generate)

		auth.GET("/watchlist", h.Watchlist.List)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.DELETE("/watchlist/:ticker", h.Watchlist.Remove)

		auth.POST("/billing/checkout", h.Billing.Checkout)
		auth.POST("/billing/portal", h.Billing.Portal)
		auth.GET("/billing/subscription", h.Billing.GetSubscription)
	}

	return r
}

// DefaultCORSConfig allows the frontend origins configured for the
// deployment, falling back to localhost for development.
func DefaultCORSConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	cfg.AllowOrigins = origins
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
