// Package entity defines the domain entities for the summaries feature.
package entity

import "time"

// Summary statuses. A summary row is created when generation starts and
// transitions to completed or failed exactly once.
const (
	StatusPending    = "pending"
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Summary is a generated investor summary for one filing.
type Summary struct {
	ID uint `gorm:"primaryKey"`

	// FilingID is the filing summarized. One summary per filing.
	FilingID uint `gorm:"not null;uniqueIndex"`

	// Status is one of the Status* constants.
	Status string `gorm:"size:16;not null"`

	// Model records which LLM produced the payload.
	Model string `gorm:"size:64"`

	// Payload is the validated summary JSON (overview, highlights, risks,
	// outlook). Empty unless Status is completed.
	Payload string `gorm:"type:text"`

	// ErrorMessage records why generation failed. Empty unless Status is failed.
	ErrorMessage string `gorm:"size:1024"`

	// GenerationMs is the wall-clock generation time in milliseconds.
	GenerationMs int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
