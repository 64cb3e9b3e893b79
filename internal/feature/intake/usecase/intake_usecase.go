// Package usecase implements the business logic for waitlist and contact intake.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"earningsnerd_backend/internal/feature/intake/domain/entity"
)

// ErrAlreadyOnWaitlist is returned when the email is already signed up.
var ErrAlreadyOnWaitlist = errors.New("email already on waitlist")

// IntakeRepository abstracts the persistence layer for intake records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type IntakeRepository interface {
	// CreateWaitlistSignup stores the signup. It returns
	// ErrAlreadyOnWaitlist when the email already exists.
	CreateWaitlistSignup(ctx context.Context, signup *entity.WaitlistSignup) error

	// CreateContactSubmission stores the contact message.
	CreateContactSubmission(ctx context.Context, sub *entity.ContactSubmission) error
}

// Mailer sends operational notification emails.
type Mailer interface {
	SendWaitlistNotification(ctx context.Context, email string) error
	SendContactNotification(ctx context.Context, name, email, message string) error
}

// IntakeUsecase handles waitlist signups and contact submissions.
type IntakeUsecase struct {
	repo   IntakeRepository
	mailer Mailer
}

// NewIntakeUsecase creates a new IntakeUsecase with the given dependencies.
func NewIntakeUsecase(repo IntakeRepository, mailer Mailer) *IntakeUsecase {
	return &IntakeUsecase{repo: repo, mailer: mailer}
}

// JoinWaitlist records the signup and notifies the team. The notification
// is best effort; the signup is already durable when it is sent.
func (u *IntakeUsecase) JoinWaitlist(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	signup := &entity.WaitlistSignup{Email: email}
	if err := u.repo.CreateWaitlistSignup(ctx, signup); err != nil {
		return fmt.Errorf("waitlist signup: %w", err)
	}

	if err := u.mailer.SendWaitlistNotification(ctx, email); err != nil {
		slog.Warn("waitlist notification failed", "error", err)
	}
	return nil
}

// SubmitContact records the contact message and notifies the team.
func (u *IntakeUsecase) SubmitContact(ctx context.Context, name, email, message string) error {
	sub := &entity.ContactSubmission{
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Message: message,
	}
	if err := u.repo.CreateContactSubmission(ctx, sub); err != nil {
		return fmt.Errorf("contact submission: %w", err)
	}

	if err := u.mailer.SendContactNotification(ctx, sub.Name, sub.Email, sub.Message); err != nil {
		slog.Warn("contact notification failed", "error", err)
	}
	return nil
}
