// Package scheduler runs the periodic background jobs of the server process.
package scheduler

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"earningsnerd_backend/internal/feature/trending/domain/entity"
)

// EnvKeyTrendingSpec overrides the trending refresh cron expression.
const EnvKeyTrendingSpec = "TRENDING_REFRESH_CRON"

const defaultTrendingSpec = "@every 15m"

// TrendingRefresher refreshes the trending-ticker cache.
// Following Go convention: interfaces are defined by the consumer (scheduler), not the provider (usecase).
type TrendingRefresher interface {
	Refresh(ctx context.Context) (*entity.TrendingList, error)
}

// Scheduler owns the cron runner for in-process background jobs.
type Scheduler struct {
	cron     *cron.Cron
	trending TrendingRefresher
}

// New creates a Scheduler with the trending refresh job registered.
func New(trending TrendingRefresher) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		trending: trending,
	}

	spec := os.Getenv(EnvKeyTrendingSpec)
	if spec == "" {
		spec = defaultTrendingSpec
	}
	if _, err := s.cron.AddFunc(spec, s.refreshTrending); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running jobs on their schedules and warms the trending
// cache once immediately.
func (s *Scheduler) Start() {
	go s.refreshTrending()
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop stops the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) refreshTrending() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	list, err := s.trending.Refresh(ctx)
	if err != nil {
		slog.Error("trending refresh failed", "error", err)
		return
	}
	slog.Info("trending refreshed", "tickers", len(list.Tickers))
}
