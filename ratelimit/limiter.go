// Package ratelimit adapts golang.org/x/time/rate into the admission-gate
// contract the block generator needs: a single Wait operation that blocks
// the caller until one unit of credit is available, or returns immediately
// when no rate is configured.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is the admission gate consumed by the block generator's add
// operations. It holds no lock of the generator and is always called
// outside the generator's state mutex.
type Limiter interface {
	// Wait blocks until one item of admission credit is available, or
	// returns ctx.Err() if ctx is done first.
	Wait(ctx context.Context) error
}

// unlimited never throttles; Wait always returns immediately.
type unlimited struct{}

func (unlimited) Wait(ctx context.Context) error { return ctx.Err() }

// tokenBucket wraps *rate.Limiter.
type tokenBucket struct {
	l *rate.Limiter
}

func (t *tokenBucket) Wait(ctx context.Context) error { return t.l.Wait(ctx) }

// New constructs a Limiter for the given items/second ceiling. A
// maxPerSecond of zero (or negative) means unlimited: Wait never blocks.
// Burst is fixed at 1 since the generator consumes credit one item at a
// time (see add.go); this keeps the long-run admission rate equal to
// maxPerSecond without permitting bursts larger than the configured rate.
func New(maxPerSecond int) Limiter {
	if maxPerSecond <= 0 {
		return unlimited{}
	}
	return &tokenBucket{l: rate.NewLimiter(rate.Limit(maxPerSecond), 1)}
}
