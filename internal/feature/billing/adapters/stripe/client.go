// Package stripe wraps the Stripe SDK behind the billing usecase's gateway interface.
package stripe

import (
	"context"
	"fmt"
	"os"
	"strconv"

	stripesdk "github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"

	"earningsnerd_backend/internal/feature/billing/usecase"
)

// Environment variable keys for the Stripe integration.
const (
	EnvKeySecretKey     = "STRIPE_SECRET_KEY"
	EnvKeyWebhookSecret = "STRIPE_WEBHOOK_SECRET"
	EnvKeySuccessURL    = "STRIPE_SUCCESS_URL"
	EnvKeyCancelURL     = "STRIPE_CANCEL_URL"
	EnvKeyReturnURL     = "STRIPE_PORTAL_RETURN_URL"
)

// Config holds the URLs checkout and portal sessions redirect back to.
type Config struct {
	SuccessURL string
	CancelURL  string
	ReturnURL  string
}

// LoadConfig loads Stripe settings from environment variables, with
// localhost defaults for development.
func LoadConfig() Config {
	cfg := Config{
		SuccessURL: os.Getenv(EnvKeySuccessURL),
		CancelURL:  os.Getenv(EnvKeyCancelURL),
		ReturnURL:  os.Getenv(EnvKeyReturnURL),
	}
	if cfg.SuccessURL == "" {
		cfg.SuccessURL = "http://localhost:3000/billing/success"
	}
	if cfg.CancelURL == "" {
		cfg.CancelURL = "http://localhost:3000/billing/cancel"
	}
	if cfg.ReturnURL == "" {
		cfg.ReturnURL = "http://localhost:3000/account"
	}
	return cfg
}

// Gateway implements usecase.CheckoutGateway using the Stripe API.
type Gateway struct {
	cfg Config
}

var _ usecase.CheckoutGateway = (*Gateway)(nil)

// NewGateway creates a Gateway and sets the SDK's API key from the
// environment.
func NewGateway(cfg Config) *Gateway {
	stripesdk.Key = os.Getenv(EnvKeySecretKey)
	return &Gateway{cfg: cfg}
}

// CreateCheckoutSession creates a subscription-mode checkout session.
// The user ID travels in ClientReferenceID so the webhook can attribute
// the completed checkout.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, userID uint, email, priceID string) (string, error) {
	params := &stripesdk.CheckoutSessionParams{
		Mode: stripesdk.String(string(stripesdk.CheckoutSessionModeSubscription)),
		LineItems: []*stripesdk.CheckoutSessionLineItemParams{
			{
				Price:    stripesdk.String(priceID),
				Quantity: stripesdk.Int64(1),
			},
		},
		SuccessURL:        stripesdk.String(g.cfg.SuccessURL),
		CancelURL:         stripesdk.String(g.cfg.CancelURL),
		ClientReferenceID: stripesdk.String(strconv.FormatUint(uint64(userID), 10)),
		CustomerEmail:     stripesdk.String(email),
	}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return s.URL, nil
}

// CreatePortalSession creates a billing-portal session for an existing
// Stripe customer.
func (g *Gateway) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	params := &stripesdk.BillingPortalSessionParams{
		Customer:  stripesdk.String(customerID),
		ReturnURL: stripesdk.String(g.cfg.ReturnURL),
	}
	params.Context = ctx

	s, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session: %w", err)
	}
	return s.URL, nil
}
