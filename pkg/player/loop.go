package player

import (
	"io"
	"sync"

	"github.com/quickread/quickread/pkg/term"
)

// Size of the inbox. Key auto-repeat and timer fires are the main producers.
const inboxSize = 128

// eventLoop moves everything that touches the Engine onto the goroutine
// calling Run. Key presses and posted functions are handled in the order they
// arrive, and the screen is painted once after each batch of queued work.
type eventLoop struct {
	inbox chan func()
	dirty chan struct{}
	quit  chan error
	done  chan struct{}

	clearMutex sync.Mutex
	clear      bool

	onKey func(term.Key)
	paint func(clear bool)
}

func newEventLoop(onKey func(term.Key), paint func(clear bool)) *eventLoop {
	return &eventLoop{
		inbox: make(chan func(), inboxSize),
		dirty: make(chan struct{}, 1),
		quit:  make(chan error, 1),
		done:  make(chan struct{}),
		// The first paint starts from a clean screen.
		clear: true,
		onKey: onKey,
		paint: paint,
	}
}

// Key queues k for the key handler. See Post.
func (lp *eventLoop) Key(k term.Key) bool {
	return lp.Post(func() { lp.onKey(k) })
}

// Post queues f to be called from Run. It may block while the inbox is full.
// Once Run has returned it does nothing and reports false without blocking.
func (lp *eventLoop) Post(f func()) bool {
	select {
	case <-lp.done:
		return false
	default:
	}
	select {
	case lp.inbox <- f:
		return true
	case <-lp.done:
		return false
	}
}

// InputEnded reports that the key source failed with err, after the keys
// already queued have been handled. Run then returns err, or nil if err is
// io.EOF.
func (lp *eventLoop) InputEnded(err error) {
	if err == io.EOF {
		err = nil
	}
	lp.Post(func() { lp.Quit(err) })
}

// Invalidate asks for a paint. It never blocks.
func (lp *eventLoop) Invalidate() {
	select {
	case lp.dirty <- struct{}{}:
	default:
	}
}

// Resize asks for a paint that clears the screen first. It never blocks.
func (lp *eventLoop) Resize() {
	lp.clearMutex.Lock()
	lp.clear = true
	lp.clearMutex.Unlock()
	lp.Invalidate()
}

// Quit makes Run return err. It never blocks, and only the first call takes
// effect.
func (lp *eventLoop) Quit(err error) {
	select {
	case lp.quit <- err:
	default:
	}
}

// Done returns a channel that is closed when Run returns.
func (lp *eventLoop) Done() <-chan struct{} { return lp.done }

// Run handles queued work until Quit is called. It must be called at most
// once. Callbacks are never called in parallel, so they may share state
// without locking.
func (lp *eventLoop) Run() error {
	defer close(lp.done)
	for {
		lp.paint(lp.takeClear())
		select {
		case err := <-lp.quit:
			return err
		case f := <-lp.inbox:
			if quit, err := lp.drain(f); quit {
				return err
			}
		case <-lp.dirty:
		}
	}
}

// drain calls f and then everything else already in the inbox, stopping as
// soon as Quit has been called.
func (lp *eventLoop) drain(f func()) (bool, error) {
	for {
		f()
		select {
		case err := <-lp.quit:
			return true, err
		default:
		}
		select {
		case f = <-lp.inbox:
		default:
			return false, nil
		}
	}
}

func (lp *eventLoop) takeClear() bool {
	lp.clearMutex.Lock()
	defer lp.clearMutex.Unlock()
	clear := lp.clear
	lp.clear = false
	return clear
}
