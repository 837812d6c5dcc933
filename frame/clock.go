package frame

import (
	"sync"
	"time"
)

// Clock provides monotonic time for delta computation, pacing and FPS measurement.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// NewSystemClock creates a clock backed by the time package.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d. It is a plain delay and cannot be interrupted.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock is a controllable clock for tests. Sleep advances time instantly.
type ManualClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	slept       time.Duration
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{currentTime: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Sleep advances the clock by d and records it.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.slept += d
}

// Advance advances the current time by the given duration
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Slept returns the total duration passed to Sleep.
func (c *ManualClock) Slept() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slept
}
