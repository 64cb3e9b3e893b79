// Package usecase implements the summary generation pipeline.
package usecase

import "errors"

var (
	// ErrSummaryNotFound is returned when no summary exists for a filing.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrQuotaExceeded is returned when a free-tier user is over the monthly limit.
	ErrQuotaExceeded = errors.New("monthly summary quota exceeded")

	// ErrContractViolation is returned when the model output failed the JSON
	// contract on every attempt.
	ErrContractViolation = errors.New("model output violated the summary contract")
)
