package clock

import (
	"context"
	"sync"
	"time"
)

// A Clock reports presentation runtime and blocks for fixed delays.
type Clock interface {
	// Now returns the time elapsed since the clock was started.
	Now() time.Duration
	// Sleep blocks for d or until ctx ends.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is a Clock backed by the monotonic wall clock.
type Real struct {
	start time.Time
}

// NewReal creates a Real clock starting at the current instant.
func NewReal() *Real {
	c := new(Real)
	c.start = time.Now()
	return c
}

// Now returns the runtime since NewReal.
func (c *Real) Now() time.Duration {
	return time.Since(c.start)
}

// Sleep waits for d. Non-positive durations return immediately.
func (c *Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Manual is a virtual Clock. Sleep does not block, it moves virtual time
// forward by the requested delay, so sequences of delays replay instantly
// and deterministically.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a Manual clock reading start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Sleep advances virtual time by d.
func (m *Manual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Advance(d)
	return nil
}

// Advance moves virtual time forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// Set jumps to an absolute virtual time.
func (m *Manual) Set(now time.Duration) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}
