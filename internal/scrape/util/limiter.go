package util

import (
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per key (client address, API token).
type ClientLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

// NewClientLimiter allows perMinute events per key with the given burst.
// perMinute <= 0 disables limiting.
func NewClientLimiter(perMinute float64, burst int) *ClientLimiter {
	r := rate.Inf
	if perMinute > 0 {
		r = rate.Limit(perMinute / 60)
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		m: make(map[string]*rate.Limiter),
		r: r,
		b: burst,
	}
}

func (cl *ClientLimiter) limiterFor(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if lim, ok := cl.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[key] = lim
	return lim
}

// Allow reports whether one more event for key fits right now.
func (cl *ClientLimiter) Allow(key string) bool {
	if key == "" {
		key = "_"
	}
	return cl.limiterFor(key).Allow()
}
