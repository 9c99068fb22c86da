package requests

import (
	"context"
	"sync"
	"time"

	"clashfinder/pkg/config"
)

// Single riot rate limiting.
type RiotLimit struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Full riot rate limit, containing all the constraints.
// Riot limits are per route, so every platform and regional fetcher holds one.
type RateLimiter struct {
	windows []*RiotLimit
	mu      sync.Mutex
}

// Create a instance of the rate limiter.
func CreateRateLimiter(windows ...config.LimitWindow) *RateLimiter {
	limiter := &RateLimiter{}
	now := time.Now()

	for _, window := range windows {
		if window.Count <= 0 || window.ResetInterval <= 0 {
			continue
		}

		limiter.windows = append(limiter.windows, &RiotLimit{
			limit:         window.Count,
			resetInterval: window.ResetInterval,
			lastReset:     now,
		})
	}

	return limiter
}

// Reset the count.
func (r *RateLimiter) resetCounts(now time.Time) {
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}

// Check if the window is on it's limits.
func (r *RateLimiter) checkLimits() bool {
	for _, window := range r.windows {
		if window.count >= window.limit {
			return false
		}
	}
	return true
}

// Loop through each window and increment the counter.
func (r *RateLimiter) incrementCounts() {
	for _, window := range r.windows {
		window.count++
	}
}

// reserve takes a slot if available, otherwise returns how long to wait for the next reset.
func (r *RateLimiter) reserve() (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.resetCounts(now)

	if r.checkLimits() {
		r.incrementCounts()
		return true, 0
	}

	var waitTime time.Duration
	for _, window := range r.windows {
		// If it's not this window that is limited, just continue.
		if window.count < window.limit {
			continue
		}

		waitTill := window.resetInterval - now.Sub(window.lastReset)
		if waitTill > waitTime {
			waitTime = waitTill
		}
	}
	return false, waitTime
}

// Wait blocks until every window allows a new request or the context ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		ok, waitTime := r.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
