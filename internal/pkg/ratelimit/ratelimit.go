package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per key
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	window   time.Duration
}

// maxKeys triggers a sweep of idle keys when a new key would exceed it.
const maxKeys = 1024

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New allows limit requests per window for every key. A limit of 0 denies
// everything.
func New(limit int, window time.Duration) *RateLimiter {
	r := rate.Limit(0)
	if limit > 0 && window > 0 {
		r = rate.Every(window / time.Duration(limit))
	}
	return &RateLimiter{
		limiters: make(map[string]*entry),
		limit:    r,
		burst:    limit,
		window:   window,
	}
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).Allow()
}

// Retry returns how long the key has to wait for its next token.
func (rl *RateLimiter) Retry(key string) time.Duration {
	if rl.limit == 0 {
		return rl.window
	}
	r := rl.get(key).Reserve()
	defer r.Cancel()
	return r.Delay()
}

// Limit returns the configured burst size.
func (rl *RateLimiter) Limit() int {
	return rl.burst
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxKeys {
			rl.cleanupLocked()
		}
		e = &entry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Cleanup removes keys idle for longer than the window
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cleanupLocked()
}

func (rl *RateLimiter) cleanupLocked() {
	cutoff := time.Now().Add(-rl.window)
	for key, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}
