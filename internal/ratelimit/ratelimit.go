// Package ratelimit provides a blocking token-bucket gate shared by all
// concurrent provider dispatches in a run. It bounds the number of
// summarization calls started per unit time; waiting callers are
// suspended, never rejected.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates the start of provider calls using the token bucket
// algorithm. One Limiter is constructed per run and passed by handle
// into every dispatch, so independent runs never share state.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing callsPerSecond sustained call starts
// with the given burst capacity. A burst of 1 enforces strict spacing.
func New(callsPerSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), burst),
	}
}

// Acquire blocks until a permit is available or the context is done.
// All waiting callers eventually proceed; no admission control is applied.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
