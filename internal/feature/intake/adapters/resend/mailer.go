// Package resend sends intake notification emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"os"

	resendsdk "github.com/resend/resend-go/v2"

	"earningsnerd_backend/internal/feature/intake/usecase"
)

// Environment variable keys for the Resend integration.
const (
	EnvKeyAPIKey        = "RESEND_API_KEY"
	EnvKeyFromAddress   = "RESEND_FROM_ADDRESS"
	EnvKeyNotifyAddress = "RESEND_NOTIFY_ADDRESS"
	EnvKeyWebhookSecret = "RESEND_WEBHOOK_SECRET"
)

// Mailer implements usecase.Mailer using Resend.
type Mailer struct {
	client *resendsdk.Client
	from   string
	notify string
}

var _ usecase.Mailer = (*Mailer)(nil)

// NewMailer creates a Mailer from environment configuration. When no API
// key is set it returns a nil-client Mailer that drops emails; intake
// still works in development without Resend credentials.
func NewMailer() *Mailer {
	m := &Mailer{
		from:   os.Getenv(EnvKeyFromAddress),
		notify: os.Getenv(EnvKeyNotifyAddress),
	}
	if key := os.Getenv(EnvKeyAPIKey); key != "" {
		m.client = resendsdk.NewClient(key)
	}
	if m.from == "" {
		m.from = "EarningsNerd <notifications@earningsnerd.com>"
	}
	if m.notify == "" {
		m.notify = "team@earningsnerd.com"
	}
	return m
}

// SendWaitlistNotification notifies the team of a new waitlist signup.
func (m *Mailer) SendWaitlistNotification(ctx context.Context, email string) error {
	return m.send(ctx, "New waitlist signup",
		fmt.Sprintf("%s joined the waitlist.", email))
}

// SendContactNotification forwards a contact-form message to the team.
func (m *Mailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	return m.send(ctx, fmt.Sprintf("Contact form: %s", name),
		fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message))
}

func (m *Mailer) send(ctx context.Context, subject, text string) error {
	if m.client == nil {
		return nil
	}
	_, err := m.client.Emails.SendWithContext(ctx, &resendsdk.SendEmailRequest{
		From:    m.from,
		To:      []string{m.notify},
		Subject: subject,
		Text:    text,
	})
	return err
}
