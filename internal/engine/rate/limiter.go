// Package rate paces request admission for replay runs.
package rate

import (
	"context"
	"sync"
	"time"
)

// Limiter schedules request admissions at a fixed rate using a leaky
// bucket: each call to Next returns the instant the next request should
// be admitted. If the caller is behind schedule the returned time is in
// the past and the request goes out immediately; the bucket never stores
// more than one pending admission, so a stalled feeder does not burst
// when it catches up.
//
// Limiter is safe for concurrent use, though the replay feeder is its
// only caller in practice.
type Limiter struct {
	mu          sync.Mutex
	perSecond   float64
	lastDrip    time.Time
	accumulated float64
}

// NewLimiter creates a limiter admitting perSecond requests per second.
// Rates <= 0 are treated as 1.
func NewLimiter(perSecond float64) *Limiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Limiter{perSecond: perSecond, lastDrip: time.Now()}
}

// Next returns when the next request should be admitted. The first call
// returns immediately.
func (l *Limiter) Next() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(l.lastDrip).Seconds(); elapsed > 0 {
		l.accumulated += elapsed * l.perSecond
	}
	if l.accumulated > 1 {
		l.accumulated = 1
	}

	if l.accumulated >= 1 {
		l.accumulated--
		l.lastDrip = now
		return now
	}

	wait := time.Duration((1 - l.accumulated) / l.perSecond * float64(time.Second))
	next := now.Add(wait)
	l.accumulated = 0
	// Anchor the next drip at the scheduled instant so waking up on time
	// does not immediately accrue a second admission.
	l.lastDrip = next
	return next
}

// Wait blocks until the next request should be admitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	d := time.Until(l.Next())
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Rate returns the configured admissions per second.
func (l *Limiter) Rate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.perSecond
}
