package gin

import (
	"sync"

	"golang.org/x/time/rate"
)

// UserLimiter provides per-user rate limiting using token buckets.
// It creates a separate rate limiter for each key, so one user hammering
// the import endpoint does not starve the others.
type UserLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewUserLimiter creates a new UserLimiter with the specified requests per
// second limit and burst size per key.
func NewUserLimiter(rps float64, burst int) *UserLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether a request for the key may proceed now.
func (l *UserLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
