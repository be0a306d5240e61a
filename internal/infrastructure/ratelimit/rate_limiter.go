package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Per-action write limits. Actions without an entry use the limiter's default.
const (
	ActionToggle     = "toggle"
	ActionReview     = "review"
	ActionContribute = "contribute"
)

type Limit struct {
	RPS   float64
	Burst int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	buckets  map[string]*bucket
	mutex    sync.RWMutex
	fallback Limit
	actions  map[string]Limit
	now      func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		fallback: Limit{RPS: rps, Burst: burst},
		actions: map[string]Limit{
			// 3 contributions up front, then one every 20 seconds
			ActionContribute: {RPS: 0.05, Burst: 3},
		},
		now: time.Now,
	}
}

// SetLimit overrides the limit for one action. Existing buckets keep their limit.
func (rl *RateLimiter) SetLimit(action string, limit Limit) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.actions[action] = limit
}

// Allow consumes a token for the user action. When refused it returns how
// long until a token becomes available.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	b := rl.getBucket(userID+":"+action, action)

	now := rl.now()
	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) getBucket(key, action string) *bucket {
	rl.mutex.RLock()
	b, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		// Double-check pattern
		if b, exists = rl.buckets[key]; !exists {
			limit, ok := rl.actions[action]
			if !ok {
				limit = rl.fallback
			}
			b = &bucket{limiter: rate.NewLimiter(rate.Limit(limit.RPS), limit.Burst)}
			rl.buckets[key] = b
		}
		rl.mutex.Unlock()
	}

	rl.mutex.Lock()
	b.lastSeen = rl.now()
	rl.mutex.Unlock()
	return b
}

// Cleanup removes buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}
