package qmeasure

import (
	"sync"
	"time"
)

/*
RateLimiter is a token bucket Regulator. Each admitted job takes a token; one
token comes back every refillRate, up to maxTokens, so short bursts pass and
sustained load is held to the refill rate.
*/
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mu         sync.Mutex
}

func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Limit takes a token and reports true when none is left.
func (rl *RateLimiter) Limit() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens > 0 {
		rl.tokens--
		return false
	}
	return true
}

// refill assumes the caller holds the mutex.
func (rl *RateLimiter) refill() {
	if rl.refillRate <= 0 {
		rl.tokens = rl.maxTokens
		return
	}

	periods := time.Since(rl.lastRefill) / rl.refillRate
	if periods <= 0 {
		return
	}

	rl.tokens = min(rl.maxTokens, rl.tokens+int(periods))
	// Only whole periods move the clock, the remainder counts toward the next token.
	rl.lastRefill = rl.lastRefill.Add(periods * rl.refillRate)
}
