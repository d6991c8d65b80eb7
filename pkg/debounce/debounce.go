// Package debounce coalesces bursts of triggers into a single delayed call.
package debounce

import (
	"time"

	"github.com/quickread/quickread/pkg/clock"
)

// Debouncer calls a function once a quiet period has passed since the last
// trigger. Like the clock it uses, it is meant to be used from a single
// goroutine.
type Debouncer struct {
	clock   clock.Clock
	delay   time.Duration
	f       func()
	timer   clock.Handle
	stopped bool
}

// New creates a Debouncer that calls f after delay of quiet.
func New(c clock.Clock, delay time.Duration, f func()) *Debouncer {
	return &Debouncer{clock: c, delay: delay, f: f}
}

// Trigger (re)starts the quiet period. It has no effect after Stop.
func (d *Debouncer) Trigger() {
	if d.stopped {
		return
	}
	d.clock.Cancel(d.timer)
	d.timer = d.clock.Schedule(d.delay, d.fire)
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool { return d.timer != 0 }

// Flush makes a pending call immediately. It does nothing if no call is
// pending.
func (d *Debouncer) Flush() {
	if d.timer == 0 {
		return
	}
	d.clock.Cancel(d.timer)
	d.fire()
}

// Cancel drops a pending call without making it.
func (d *Debouncer) Cancel() {
	d.clock.Cancel(d.timer)
	d.timer = 0
}

// Stop drops a pending call and disables further triggers.
func (d *Debouncer) Stop() {
	d.Cancel()
	d.stopped = true
}

func (d *Debouncer) fire() {
	d.timer = 0
	d.f()
}
