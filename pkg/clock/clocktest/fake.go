// Package clocktest provides a deterministic fake clock.
package clocktest

import (
	"sort"
	"time"

	"github.com/quickread/quickread/pkg/clock"
)

// Fake is a clock.Clock whose time only moves when Advance is called.
// Callbacks run synchronously inside Advance, in the order of their due time
// and then of their scheduling.
type Fake struct {
	now     time.Duration
	next    clock.Handle
	pending []*entry
}

type entry struct {
	handle clock.Handle
	due    time.Duration
	f      func()
}

var _ clock.Clock = (*Fake)(nil)

// New returns a new Fake clock at time zero.
func New() *Fake { return &Fake{} }

// Now returns the time elapsed since the clock was created.
func (c *Fake) Now() time.Duration { return c.now }

// Schedule implements clock.Clock.
func (c *Fake) Schedule(d time.Duration, f func()) clock.Handle {
	if d < 0 {
		d = 0
	}
	c.next++
	c.pending = append(c.pending, &entry{c.next, c.now + d, f})
	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].due < c.pending[j].due
	})
	return c.next
}

// Cancel implements clock.Clock.
func (c *Fake) Cancel(h clock.Handle) {
	for i, e := range c.pending {
		if e.handle == h {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, running every callback that becomes
// due. Callbacks scheduled by other callbacks run too if they fall due within
// the same window.
func (c *Fake) Advance(d time.Duration) {
	target := c.now + d
	for len(c.pending) > 0 && c.pending[0].due <= target {
		e := c.pending[0]
		c.pending = c.pending[1:]
		c.now = e.due
		e.f()
	}
	c.now = target
}

// Fire advances the clock to the earliest pending callback and runs it, along
// with any other callback due at the same moment. It reports whether there was
// a callback to run.
func (c *Fake) Fire() bool {
	if len(c.pending) == 0 {
		return false
	}
	c.Advance(c.pending[0].due - c.now)
	return true
}

// Pending returns the number of scheduled callbacks.
func (c *Fake) Pending() int { return len(c.pending) }

// NextDelay returns how long from now the earliest pending callback is due,
// and whether there is one.
func (c *Fake) NextDelay() (time.Duration, bool) {
	if len(c.pending) == 0 {
		return 0, false
	}
	return c.pending[0].due - c.now, true
}
