package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	stripegw "earningsnerd_backend/internal/feature/billing/adapters/stripe"
	"earningsnerd_backend/internal/feature/billing/domain/entity"
)

// Stripe recommends capping webhook bodies well below the default server limit.
const maxWebhookBody = 64 * 1024

// SubscriptionWriter defines the state transitions the webhook applies.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SubscriptionWriter interface {
	ActivateFromCheckout(ctx context.Context, userID uint, customerID, stripeSubID, plan string, periodEnd time.Time) error
	UpdateStatus(ctx context.Context, stripeSubID, status, plan string, periodEnd time.Time) error
}

// StripeWebhookHandler verifies and applies Stripe webhook events.
type StripeWebhookHandler struct {
	uc     SubscriptionWriter
	secret string
}

// NewStripeWebhookHandler creates a handler reading the signing secret
// from the environment.
func NewStripeWebhookHandler(uc SubscriptionWriter) *StripeWebhookHandler {
	return &StripeWebhookHandler{uc: uc, secret: os.Getenv(stripegw.EnvKeyWebhookSecret)}
}

// Handle handles POST /api/v1/webhooks/stripe.
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.secret)
	if err != nil {
		slog.Warn("stripe webhook signature rejected", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	switch event.Type {
	case "checkout.session.completed":
		var sess stripesdk.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		err = h.applyCheckoutCompleted(ctx, &sess)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripesdk.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		err = h.uc.UpdateStatus(ctx, sub.ID, mapStatus(sub.Status), subscriptionPlan(&sub), subscriptionPeriodEnd(&sub))

	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
		c.Status(http.StatusOK)
		return
	}

	if err != nil {
		slog.Error("stripe webhook apply failed", "error", err, "event_type", event.Type, "event_id", event.ID)
		// Non-2xx makes Stripe redeliver the event later.
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StripeWebhookHandler) applyCheckoutCompleted(ctx context.Context, sess *stripesdk.CheckoutSession) error {
	userID, err := strconv.ParseUint(sess.ClientReferenceID, 10, 64)
	if err != nil {
		slog.Warn("checkout session without usable client_reference_id", "session_id", sess.ID)
		return nil
	}

	var customerID, subID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		subID = sess.Subscription.ID
	}
	// Plan and period end arrive on the subscription.updated event that
	// follows; the checkout event only establishes the link to the user.
	return h.uc.ActivateFromCheckout(ctx, uint(userID), customerID, subID, "", time.Time{})
}

// mapStatus folds Stripe's subscription statuses onto the three states
// the application tracks.
func mapStatus(s stripesdk.SubscriptionStatus) string {
	switch s {
	case stripesdk.SubscriptionStatusActive, stripesdk.SubscriptionStatusTrialing:
		return entity.StatusActive
	case stripesdk.SubscriptionStatusPastDue, stripesdk.SubscriptionStatusUnpaid:
		return entity.StatusPastDue
	default:
		return entity.StatusCanceled
	}
}

func subscriptionPlan(sub *stripesdk.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		return sub.Items.Data[0].Price.ID
	}
	return ""
}

// subscriptionPeriodEnd reads the current period end, which lives on the
// subscription item since the 2025 Stripe API versions.
func subscriptionPeriodEnd(sub *stripesdk.Subscription) time.Time {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].CurrentPeriodEnd > 0 {
		return time.Unix(sub.Items.Data[0].CurrentPeriodEnd, 0).UTC()
	}
	return time.Time{}
}
