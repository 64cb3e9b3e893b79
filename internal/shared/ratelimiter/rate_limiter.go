// Package ratelimiter provides a fixed-window limiter for outbound API calls.
package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface limits the frequency of operations such as
// external API calls.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter enforces a maximum number of calls per interval.
// It is not safe for concurrent use; the ingest loop calls it from a
// single goroutine.
type RateLimiter struct {
	limit     int           // max calls per interval
	interval  time.Duration // window size
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded checks whether the limit for the current window has been
// reached and sleeps until the window resets if so.
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Info("rate limit reached, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
