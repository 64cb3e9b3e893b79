package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	financialentity "earningsnerd_backend/internal/feature/financials/domain/entity"
	"earningsnerd_backend/internal/feature/summaries/domain/entity"
)

// maxAttempts is the total number of model calls per generation: the base
// prompt plus one escalated retry after a contract violation.
const maxAttempts = 2

// Summarizer generates raw model output for a prompt.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Summarizer interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// SummaryRepository abstracts the persistence layer for summaries.
type SummaryRepository interface {
	// FindByFiling retrieves the summary for a filing.
	// It returns ErrSummaryNotFound when none exists.
	FindByFiling(ctx context.Context, filingID uint) (*entity.Summary, error)

	// Save inserts or replaces the summary keyed by filing ID.
	Save(ctx context.Context, summary *entity.Summary) error
}

// SummaryCache caches completed summaries so repeat reads skip Postgres.
// A nil-safe implementation must treat misses as (nil, nil).
type SummaryCache interface {
	Get(ctx context.Context, filingID uint) (*entity.Summary, error)
	Set(ctx context.Context, summary *entity.Summary) error
}

// QuotaStore counts summary generations per user per calendar month.
type QuotaStore interface {
	// Increment adds one generation for the user's current month and
	// returns the new count.
	Increment(ctx context.Context, userID uint) (int64, error)
}

// SubscriptionChecker reports whether the user has an active paid plan.
type SubscriptionChecker interface {
	IsActive(ctx context.Context, userID uint) (bool, error)
}

// SnapshotProvider supplies the extracted financials fed into the prompt.
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, filing *filingentity.Filing, cik string) (*financialentity.FinancialSnapshot, error)
}

// SummaryUsecase runs the generation pipeline: quota check, prompt build,
// model call with contract validation and one escalated retry, then
// persistence and caching.
type SummaryUsecase struct {
	summarizer    Summarizer
	summaries     SummaryRepository
	cache         SummaryCache
	quota         QuotaStore
	subscriptions SubscriptionChecker
	snapshots     SnapshotProvider
	freeLimit     int64
}

// NewSummaryUsecase creates a new SummaryUsecase instance.
func NewSummaryUsecase(
	summarizer Summarizer,
	summaries SummaryRepository,
	cache SummaryCache,
	quota QuotaStore,
	subscriptions SubscriptionChecker,
	snapshots SnapshotProvider,
	freeLimit int64,
) *SummaryUsecase {
	if freeLimit <= 0 {
		freeLimit = 5
	}
	return &SummaryUsecase{
		summarizer:    summarizer,
		summaries:     summaries,
		cache:         cache,
		quota:         quota,
		subscriptions: subscriptions,
		snapshots:     snapshots,
		freeLimit:     freeLimit,
	}
}

// Get returns the stored summary for a filing without generating,
// checking the cache before Postgres.
func (u *SummaryUsecase) Get(ctx context.Context, filingID uint) (*entity.Summary, error) {
	if cached, err := u.cache.Get(ctx, filingID); err == nil && cached != nil {
		return cached, nil
	}
	return u.summaries.FindByFiling(ctx, filingID)
}

// Generate produces the summary for a filing, reusing a completed one if
// it exists. Quota is only charged when a model call actually happens.
func (u *SummaryUsecase) Generate(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error) {
	if existing, err := u.Get(ctx, filing.ID); err == nil && existing.Status == entity.StatusCompleted {
		return existing, nil
	}

	if err := u.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	snapshot, err := u.snapshots.GetSnapshot(ctx, filing, company.CIK)
	if err != nil {
		return nil, fmt.Errorf("load financials: %w", err)
	}

	summary := &entity.Summary{
		FilingID: filing.ID,
		Status:   entity.StatusGenerating,
		Model:    u.summarizer.ModelName(),
	}

	start := time.Now()
	payload, genErr := u.generateWithRetry(ctx, buildPrompt(company, filing, snapshot))
	summary.GenerationMs = time.Since(start).Milliseconds()

	if genErr != nil {
		summary.Status = entity.StatusFailed
		summary.ErrorMessage = genErr.Error()
		if err := u.summaries.Save(ctx, summary); err != nil {
			slog.Error("failed to persist failed summary", "filing_id", filing.ID, "error", err)
		}
		return nil, genErr
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode summary payload: %w", err)
	}
	summary.Status = entity.StatusCompleted
	summary.Payload = string(encoded)

	if err := u.summaries.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("persist summary: %w", err)
	}
	if err := u.cache.Set(ctx, summary); err != nil {
		// Cache writes are best effort.
		slog.Warn("failed to cache summary", "filing_id", filing.ID, "error", err)
	}

	slog.Info("summary generated",
		"filing_id", filing.ID, "model", summary.Model, "duration_ms", summary.GenerationMs)
	return summary, nil
}

// generateWithRetry calls the model up to maxAttempts times, escalating
// the prompt after a contract violation.
func (u *SummaryUsecase) generateWithRetry(ctx context.Context, prompt string) (*Payload, error) {
	current := prompt
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := u.summarizer.GenerateJSON(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}

		payload, err := ParsePayload(raw)
		if err == nil {
			return payload, nil
		}

		lastErr = err
		slog.Warn("summary contract violation", "attempt", attempt, "error", err)
		current = escalatePrompt(prompt, err.Error())
	}

	return nil, fmt.Errorf("%w: %v", ErrContractViolation, lastErr)
}

// checkQuota charges one generation against the free tier unless the user
// has an active subscription.
func (u *SummaryUsecase) checkQuota(ctx context.Context, userID uint) error {
	active, err := u.subscriptions.IsActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if active {
		return nil
	}

	count, err := u.quota.Increment(ctx, userID)
	if err != nil {
		// A broken quota backend must not take summaries down with it.
		slog.Warn("quota store unavailable, allowing request", "user_id", userID, "error", err)
		return nil
	}
	if count > u.freeLimit {
		return ErrQuotaExceeded
	}
	return nil
}
