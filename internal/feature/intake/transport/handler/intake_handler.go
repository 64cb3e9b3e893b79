// Package handler contains the Gin HTTP handlers for the intake feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	"earningsnerd_backend/internal/feature/intake/usecase"
)

// IntakeUsecase defines the behavior the handler needs from the intake
// business logic.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IntakeUsecase interface {
	JoinWaitlist(ctx context.Context, email string) error
	SubmitContact(ctx context.Context, name, email, message string) error
}

// IntakeHandler handles the public waitlist and contact endpoints.
type IntakeHandler struct {
	uc IntakeUsecase
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(uc IntakeUsecase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// Waitlist handles POST /api/v1/waitlist.
func (h *IntakeHandler) Waitlist(c *gin.Context) {
	var req api.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "a valid email is required"})
		return
	}

	if err := h.uc.JoinWaitlist(c.Request.Context(), string(req.Email)); err != nil {
		if errors.Is(err, usecase.ErrAlreadyOnWaitlist) {
			// Idempotent from the client's point of view.
			c.JSON(http.StatusOK, api.MessageResponse{Message: "you're on the list"})
			return
		}
		slog.Error("waitlist signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "you're on the list"})
}

// Contact handles POST /api/v1/contact.
func (h *IntakeHandler) Contact(c *gin.Context) {
	var req api.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name, email, and message are required"})
		return
	}

	if err := h.uc.SubmitContact(c.Request.Context(), req.Name, string(req.Email), req.Message); err != nil {
		slog.Error("contact submission failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "message received"})
}
