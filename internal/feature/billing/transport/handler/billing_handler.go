// Package handler contains the Gin HTTP handlers for the billing feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	"earningsnerd_backend/internal/feature/billing/domain/entity"
	"earningsnerd_backend/internal/feature/billing/usecase"
	jwtmw "earningsnerd_backend/internal/platform/jwt"
)

// BillingUsecase defines the behavior the handler needs from the billing
// business logic.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type BillingUsecase interface {
	Checkout(ctx context.Context, userID uint, email, priceID string) (string, error)
	Portal(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, userID uint) (*entity.Subscription, error)
}

// BillingHandler handles checkout, portal, and subscription endpoints.
type BillingHandler struct {
	uc BillingUsecase
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(uc BillingUsecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Checkout handles POST /api/v1/billing/checkout.
func (h *BillingHandler) Checkout(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	email, _ := jwtmw.Email(c)

	var req api.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "price_id is required"})
		return
	}

	url, err := h.uc.Checkout(c.Request.Context(), userID, email, req.PriceID)
	if err != nil {
		slog.Error("checkout session failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to create checkout session"})
		return
	}
	c.JSON(http.StatusOK, api.CheckoutResponse{URL: url})
}

// Portal handles POST /api/v1/billing/portal.
func (h *BillingHandler) Portal(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	url, err := h.uc.Portal(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoSubscription) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no subscription"})
			return
		}
		slog.Error("portal session failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to create portal session"})
		return
	}
	c.JSON(http.StatusOK, api.CheckoutResponse{URL: url})
}

// GetSubscription handles GET /api/v1/billing/subscription.
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	sub, err := h.uc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoSubscription) {
			// Free tier is the normal state, not an error.
			c.JSON(http.StatusOK, api.SubscriptionResponse{Plan: "free", Status: "none"})
			return
		}
		slog.Error("subscription lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	resp := api.SubscriptionResponse{
		Plan:   sub.Plan,
		Status: sub.Status,
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		resp.CurrentPeriodEnd = sub.CurrentPeriodEnd.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
