// Package adapters provides the persistence and email implementations for the intake feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"earningsnerd_backend/internal/feature/intake/domain/entity"
	"earningsnerd_backend/internal/feature/intake/usecase"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// IntakePostgres implements usecase.IntakeRepository backed by GORM.
type IntakePostgres struct {
	db *gorm.DB
}

var _ usecase.IntakeRepository = (*IntakePostgres)(nil)

// NewIntakePostgres creates a new IntakePostgres repository.
func NewIntakePostgres(db *gorm.DB) *IntakePostgres {
	return &IntakePostgres{db: db}
}

// CreateWaitlistSignup stores the signup, mapping the unique-email
// violation to ErrAlreadyOnWaitlist.
func (r *IntakePostgres) CreateWaitlistSignup(ctx context.Context, signup *entity.WaitlistSignup) error {
	if err := r.db.WithContext(ctx).Create(signup).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrAlreadyOnWaitlist
		}
		return err
	}
	return nil
}

// CreateContactSubmission stores the contact message.
func (r *IntakePostgres) CreateContactSubmission(ctx context.Context, sub *entity.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}
