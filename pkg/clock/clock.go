// Package clock abstracts the scheduling of delayed callbacks, so that timing
// driven components can be tested with a fake clock.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle never refers to a
// scheduled callback, so cancelling it is always a no-op.
type Handle uint64

// Clock schedules callbacks.
type Clock interface {
	// Schedule arranges for f to be called once after d has elapsed.
	Schedule(d time.Duration, f func()) Handle
	// Cancel cancels a callback scheduled with Schedule. Cancelling a handle
	// that has fired or has already been cancelled is a no-op.
	Cancel(h Handle)
}

// Real is a Clock backed by time.AfterFunc.
//
// Callbacks are not run on the timer goroutine. Instead they are handed to the
// post function, which is expected to run them on the goroutine that owns the
// scheduling component, typically by sending them to an event loop. A
// callback whose handle is cancelled after it was posted but before it runs is
// dropped, provided that Cancel is called on that same goroutine.
type Real struct {
	post func(func())

	mutex   sync.Mutex
	next    Handle
	pending map[Handle]*time.Timer
}

// NewReal creates a new Real clock. If post is nil, callbacks are run directly
// on the timer goroutine.
func NewReal(post func(func())) *Real {
	if post == nil {
		post = func(f func()) { f() }
	}
	return &Real{post: post, pending: make(map[Handle]*time.Timer)}
}

// Schedule implements Clock.
func (c *Real) Schedule(d time.Duration, f func()) Handle {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.next++
	h := c.next
	c.pending[h] = time.AfterFunc(d, func() {
		c.post(func() {
			if c.take(h) {
				f()
			}
		})
	})
	return h
}

// Cancel implements Clock.
func (c *Real) Cancel(h Handle) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if timer, ok := c.pending[h]; ok {
		timer.Stop()
		delete(c.pending, h)
	}
}

// Pending returns the number of callbacks that are scheduled and have neither
// run nor been cancelled.
func (c *Real) Pending() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.pending)
}

func (c *Real) take(h Handle) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, ok := c.pending[h]
	delete(c.pending, h)
	return ok
}
