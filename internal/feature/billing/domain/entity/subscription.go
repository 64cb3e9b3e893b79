// Package entity defines the domain entities for the billing feature.
package entity

import "time"

// Subscription statuses mirrored from Stripe.
const (
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

// Subscription is a user's Stripe subscription state, kept in sync by
// webhook events. One subscription per user.
type Subscription struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;uniqueIndex"`

	// StripeCustomerID and StripeSubscriptionID are Stripe's identifiers.
	// The subscription ID may be empty until the checkout event is followed
	// by subscription.updated, so uniqueness only applies to non-empty IDs.
	StripeCustomerID     string `gorm:"size:64;not null;index"`
	StripeSubscriptionID string `gorm:"size:64;not null;uniqueIndex:idx_subscriptions_stripe_sub,where:stripe_subscription_id <> ''"`

	// Plan is the Stripe price ID the user subscribed to.
	Plan string `gorm:"size:64;not null"`

	// Status is one of the Status* constants.
	Status string `gorm:"size:16;not null"`

	// CurrentPeriodEnd is when the paid period lapses.
	CurrentPeriodEnd time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the subscription currently unlocks paid features.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive && time.Now().Before(s.CurrentPeriodEnd)
}
