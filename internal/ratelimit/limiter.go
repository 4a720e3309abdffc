package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Source identifies an upstream site whose requests are paced together
type Source string

const (
	// SourceYahoo is the Yahoo Finance quote site
	SourceYahoo Source = "yahoo"
)

// Limiter manages request pacing for different upstream sources
type Limiter struct {
	limiters map[Source]*rate.Limiter
	mu       sync.RWMutex
}

// New creates an empty Limiter. Sources without a configured limit are unlimited.
func New() *Limiter {
	return &Limiter{
		limiters: make(map[Source]*rate.Limiter),
	}
}

// Set configures the rate for a source in requests per second.
// A non-positive rps removes any limit.
func (l *Limiter) Set(source Source, rps float64, burst int) {
	if burst < 1 {
		burst = 1
	}

	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}

	l.mu.Lock()
	l.limiters[source] = rate.NewLimiter(limit, burst)
	l.mu.Unlock()
}

// Wait blocks until the rate limiter permits an event for the given source
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, source Source) error {
	l.mu.RLock()
	limiter, exists := l.limiters[source]
	l.mu.RUnlock()

	if !exists {
		return ctx.Err()
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given source may happen now
func (l *Limiter) Allow(source Source) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[source]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
