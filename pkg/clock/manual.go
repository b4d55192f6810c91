package clock

import (
	"slices"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Timers fire synchronously inside Advance, ordered by deadline and then by
// the order they were scheduled. A timer scheduled with a zero delay fires on
// the next call to Advance, never inside AfterFunc itself.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
	mu     sync.Mutex
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	f        func()
	active   bool
}

// NewManual creates a manual clock starting at the given time.
// A zero start is replaced with a fixed, non-zero instant.
func NewManual(start time.Time) *Manual {
	if start.IsZero() {
		start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Manual{now: start}
}

func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Manual) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &manualTimer{
		clock:    c,
		deadline: c.now.Add(max(d, 0)),
		seq:      c.seq,
		f:        f,
		active:   true,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that became due,
// including timers scheduled by callbacks as long as their deadline falls
// within the advanced window. Callbacks run without the clock lock held.
// Advance(0) runs only the timers that are already due.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(max(d, 0))
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	c.mu.Lock()
	if c.now.Before(target) {
		c.now = target
	}
	c.mu.Unlock()
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Manual) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// nextDue pops the earliest timer due at or before target and moves the
// clock to its deadline.
func (c *Manual) nextDue(target time.Time) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.timers) == 0 {
		return nil
	}

	idx := 0
	for i, t := range c.timers[1:] {
		if t.before(c.timers[idx]) {
			idx = i + 1
		}
	}

	t := c.timers[idx]
	if t.deadline.After(target) {
		return nil
	}

	c.timers = slices.Delete(c.timers, idx, idx+1)
	t.active = false
	if t.deadline.After(c.now) {
		c.now = t.deadline
	}
	return t
}

func (t *manualTimer) before(o *manualTimer) bool {
	if t.deadline.Equal(o.deadline) {
		return t.seq < o.seq
	}
	return t.deadline.Before(o.deadline)
}

func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if !t.active {
		return false
	}
	t.active = false
	c.timers = slices.DeleteFunc(c.timers, func(o *manualTimer) bool { return o == t })
	return true
}
