// Package adapters provides the persistence implementation for the billing feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"earningsnerd_backend/internal/feature/billing/domain/entity"
	"earningsnerd_backend/internal/feature/billing/usecase"
)

// SubscriptionPostgres implements usecase.SubscriptionRepository backed by GORM.
type SubscriptionPostgres struct {
	db *gorm.DB
}

var _ usecase.SubscriptionRepository = (*SubscriptionPostgres)(nil)

// NewSubscriptionPostgres creates a new SubscriptionPostgres repository.
func NewSubscriptionPostgres(db *gorm.DB) *SubscriptionPostgres {
	return &SubscriptionPostgres{db: db}
}

// FindByUserID retrieves the subscription for the user.
func (r *SubscriptionPostgres) FindByUserID(ctx context.Context, userID uint) (*entity.Subscription, error) {
	var sub entity.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoSubscription
		}
		return nil, err
	}
	return &sub, nil
}

// FindByStripeSubscriptionID retrieves a subscription by Stripe's ID.
// An empty ID never matches; rows from a bare checkout event carry one
// until the first subscription.updated fills it in.
func (r *SubscriptionPostgres) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*entity.Subscription, error) {
	if stripeSubID == "" {
		return nil, usecase.ErrNoSubscription
	}
	var sub entity.Subscription
	if err := r.db.WithContext(ctx).Where("stripe_subscription_id = ?", stripeSubID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoSubscription
		}
		return nil, err
	}
	return &sub, nil
}

// Upsert inserts or replaces the subscription keyed by user ID.
func (r *SubscriptionPostgres) Upsert(ctx context.Context, sub *entity.Subscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_customer_id", "stripe_subscription_id", "plan", "status", "current_period_end", "updated_at",
		}),
	}).Create(sub).Error
}
