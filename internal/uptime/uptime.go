// Package uptime provides the monotonic minutes-since-start clock that
// timestamps samples. The reading restarts from zero when the process
// restarts; no epoch is persisted.
package uptime

import (
	"sync"
	"time"
)

// Clock reports minutes of uptime.
type Clock interface {
	// Minutes returns whole minutes elapsed since start.
	Minutes() uint32
}

// SystemClock measures uptime from its construction using the runtime
// monotonic clock, so wall-clock adjustments do not affect it.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock starting at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Minutes returns whole minutes elapsed since construction.
func (c *SystemClock) Minutes() uint32 {
	return uint32(time.Since(c.start) / time.Minute)
}

// FakeClock is a settable Clock for tests.
type FakeClock struct {
	mu      sync.Mutex
	minutes uint32
}

// Set moves the clock to m minutes.
func (c *FakeClock) Set(m uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.minutes = m
}

// Advance moves the clock forward by m minutes.
func (c *FakeClock) Advance(m uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.minutes += m
}

// Minutes returns the current fake reading.
func (c *FakeClock) Minutes() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minutes
}
