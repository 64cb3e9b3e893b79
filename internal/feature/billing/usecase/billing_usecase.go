// Package usecase implements the business logic for the billing feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"earningsnerd_backend/internal/feature/billing/domain/entity"
)

// ErrNoSubscription is returned when the user has no subscription row.
var ErrNoSubscription = errors.New("no subscription")

// SubscriptionRepository abstracts the persistence layer for subscriptions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SubscriptionRepository interface {
	// FindByUserID retrieves the user's subscription.
	// It returns ErrNoSubscription when none exists.
	FindByUserID(ctx context.Context, userID uint) (*entity.Subscription, error)

	// FindByStripeSubscriptionID retrieves a subscription by Stripe's ID.
	FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*entity.Subscription, error)

	// Upsert inserts or replaces the subscription keyed by user ID.
	Upsert(ctx context.Context, sub *entity.Subscription) error
}

// CheckoutGateway creates Stripe-hosted checkout and portal sessions.
type CheckoutGateway interface {
	// CreateCheckoutSession returns the URL of a hosted checkout for the
	// user and price.
	CreateCheckoutSession(ctx context.Context, userID uint, email, priceID string) (string, error)

	// CreatePortalSession returns the URL of the billing portal for the
	// Stripe customer.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
}

// BillingUsecase provides checkout-session creation and webhook-driven
// subscription state.
type BillingUsecase struct {
	subs    SubscriptionRepository
	gateway CheckoutGateway
}

// NewBillingUsecase creates a new BillingUsecase with the given dependencies.
func NewBillingUsecase(subs SubscriptionRepository, gateway CheckoutGateway) *BillingUsecase {
	return &BillingUsecase{subs: subs, gateway: gateway}
}

// Checkout creates a hosted checkout session for the user.
func (u *BillingUsecase) Checkout(ctx context.Context, userID uint, email, priceID string) (string, error) {
	url, err := u.gateway.CreateCheckoutSession(ctx, userID, email, priceID)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return url, nil
}

// Portal creates a billing-portal session for the user's Stripe customer.
func (u *BillingUsecase) Portal(ctx context.Context, userID uint) (string, error) {
	sub, err := u.subs.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	url, err := u.gateway.CreatePortalSession(ctx, sub.StripeCustomerID)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return url, nil
}

// Get returns the user's subscription.
func (u *BillingUsecase) Get(ctx context.Context, userID uint) (*entity.Subscription, error) {
	return u.subs.FindByUserID(ctx, userID)
}

// IsActive reports whether the user has an active subscription. Missing
// rows simply mean "free tier", not an error.
func (u *BillingUsecase) IsActive(ctx context.Context, userID uint) (bool, error) {
	sub, err := u.subs.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive(), nil
}

// ActivateFromCheckout records a completed checkout. Upserting by user ID
// makes redelivered webhook events idempotent.
func (u *BillingUsecase) ActivateFromCheckout(ctx context.Context, userID uint, customerID, stripeSubID, plan string, periodEnd time.Time) error {
	sub := &entity.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: stripeSubID,
		Plan:                 plan,
		Status:               entity.StatusActive,
		CurrentPeriodEnd:     periodEnd,
	}
	if err := u.subs.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	slog.Info("subscription activated", "user_id", userID, "stripe_subscription_id", stripeSubID)
	return nil
}

// UpdateStatus applies a subscription status change from Stripe. Events
// for unknown subscriptions are logged and dropped; Stripe retries
// deliveries and ordering is not guaranteed.
func (u *BillingUsecase) UpdateStatus(ctx context.Context, stripeSubID, status, plan string, periodEnd time.Time) error {
	sub, err := u.subs.FindByStripeSubscriptionID(ctx, stripeSubID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			slog.Warn("webhook for unknown subscription", "stripe_subscription_id", stripeSubID)
			return nil
		}
		return err
	}

	sub.Status = status
	if plan != "" {
		sub.Plan = plan
	}
	if !periodEnd.IsZero() {
		sub.CurrentPeriodEnd = periodEnd
	}
	return u.subs.Upsert(ctx, sub)
}
