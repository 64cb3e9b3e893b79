package cache

import (
	"time"
)

// TimeUntilNext6AMEastern returns the duration until the next 6 AM US
// Eastern time. EDGAR posts overnight index updates, so filing caches
// expire just before the US market pre-open.
func TimeUntilNext6AMEastern() time.Duration {
	loc, _ := time.LoadLocation("America/New_York")
	now := time.Now().In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, loc)
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}

// TimeUntilMonthEnd returns the duration until the first instant of the
// next calendar month in UTC. Free-tier quota counters expire on this
// boundary.
func TimeUntilMonthEnd(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return next.Sub(now)
}
