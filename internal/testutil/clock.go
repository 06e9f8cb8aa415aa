package testutil

import (
	"sync"
	"time"
)

// FrozenClock provides a thread-safe, manually advanced wall clock for tests.
//
// Unlike time.Now, a FrozenClock only moves when told to. Audit records
// written through it carry reproducible timestamps, which keeps
// time-dependent assertions and golden comparisons stable.
//
// Wire it into a store with audit.WithNowFunc(clock.Now).
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozenClock creates a clock pinned to t0.
func NewFrozenClock(t0 time.Time) *FrozenClock {
	return &FrozenClock{now: t0}
}

// Now returns the clock's current time without advancing it.
// The method value clock.Now satisfies func() time.Time.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
//
// Monotonic as long as d is non-negative; tests that need out-of-order
// timestamps should use Set instead.
func (c *FrozenClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set pins the clock to a specific time.
//
// Used for test reuse. After Set(t0), Now() returns t0 again.
func (c *FrozenClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
