// Package ratelimit throttles outgoing catalog requests.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging/debugging.
// A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond with an equal burst.
// It returns nil when requestsPerSecond is not positive, which disables limiting.
func New(name string, requestsPerSecond int) *Limiter {
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a limiter with a custom burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until the limiter allows a request to proceed.
// Returns an error if the context is cancelled first.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a request can proceed without blocking.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Name returns the name of this limiter.
func (l *Limiter) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}
