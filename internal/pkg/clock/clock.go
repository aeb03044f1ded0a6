package clock

import "time"

// Clock supplies "now" to every operation that reasons about time. The
// request layer owns the real clock; domain code only ever sees the value
// passed down, which keeps quoting and restriction checks reproducible.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// FrozenClock is a hand-wound clock for tests.
type FrozenClock struct {
	current time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{current: t}
}

func (c *FrozenClock) Now() time.Time {
	return c.current
}

func (c *FrozenClock) SetTo(t time.Time) {
	c.current = t
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
