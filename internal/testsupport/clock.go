package testsupport

import (
	"sync"
	"time"
)

// Clock is a manually advanced clock for driving time-dependent state
// machines in tests without sleeping.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at the provided instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current synthetic time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
