package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/platform/webhook"
)

// Resend caps event payloads well below this.
const maxResendBody = 64 * 1024

// resendEvent is the envelope Resend posts for email lifecycle events.
type resendEvent struct {
	Type string `json:"type"`
	Data struct {
		EmailID string   `json:"email_id"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
	} `json:"data"`
}

// ResendWebhookHandler verifies and records Resend delivery events.
type ResendWebhookHandler struct {
	verifier *webhook.Verifier
}

// NewResendWebhookHandler creates a handler with the given signature verifier.
func NewResendWebhookHandler(verifier *webhook.Verifier) *ResendWebhookHandler {
	return &ResendWebhookHandler{verifier: verifier}
}

// Handle handles POST /api/v1/webhooks/resend.
func (h *ResendWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxResendBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.verifier.Verify(payload,
		c.GetHeader("svix-id"),
		c.GetHeader("svix-timestamp"),
		c.GetHeader("svix-signature"))
	if err != nil {
		slog.Warn("resend webhook signature rejected", "error", err)
		c.Status(http.StatusUnauthorized)
		return
	}

	var event resendEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// Delivery problems surface in logs; there is no user-facing state to update.
	switch event.Type {
	case "email.bounced", "email.complained", "email.delivery_delayed":
		slog.Warn("email delivery problem", "type", event.Type, "email_id", event.Data.EmailID, "subject", event.Data.Subject)
	default:
		slog.Debug("resend event", "type", event.Type, "email_id", event.Data.EmailID)
	}
	c.Status(http.StatusOK)
}
