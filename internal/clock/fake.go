package clock

import "time"

// FakeClock is a Clock pinned to an instant that tests move by hand.
// It is not safe for concurrent use.
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a clock frozen at t, normalized to UTC like the
// system clock.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward, or back with a negative duration.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to an absolute instant.
func (c *FakeClock) Set(t time.Time) {
	c.now = t.UTC()
}
