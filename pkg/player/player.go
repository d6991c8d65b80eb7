// Package player runs the full-screen reader: it feeds key presses and timer
// fires to an Engine on a serial event loop, and redraws the screen after
// every change.
package player

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/quickread/quickread/pkg/clock"
	"github.com/quickread/quickread/pkg/debounce"
	"github.com/quickread/quickread/pkg/logutil"
	"github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/term"
	"github.com/quickread/quickread/pkg/ui"
)

var logger = logutil.GetLogger("[player] ")

// DefaultHoldRelease is how long after the last space the hold is taken to
// have ended. It is longer than the initial delay of key auto-repeat on common
// systems.
const DefaultHoldRelease = 650 * time.Millisecond

// Config keeps the configuration of a Player.
type Config struct {
	// Where frames are written.
	Out io.Writer
	// Returns the size of the screen.
	Size func() (width, height int)
	Styles ui.Styles
	// Defaults to DefaultHoldRelease.
	HoldRelease time.Duration
}

// Player is the full-screen reader.
type Player struct {
	cfg Config
	lp  *eventLoop

	engine  *reader.Engine
	release *debounce.Debouncer
	holding bool
}

// New creates a new Player.
func New(cfg Config) *Player {
	if cfg.Size == nil {
		cfg.Size = func() (int, int) { return 80, 24 }
	}
	if cfg.HoldRelease <= 0 {
		cfg.HoldRelease = DefaultHoldRelease
	}
	p := &Player{cfg: cfg}
	p.lp = newEventLoop(p.handleKey, p.redraw)
	return p
}

// Post arranges for f to be called on the event loop. It is meant to be the
// post function of a clock.Real. After Run has returned, f is dropped.
func (p *Player) Post(f func()) { p.lp.Post(f) }

// Run reads key presses from in and drives e until the user quits or in is
// exhausted. The Engine must be driven by c, with its callbacks posted to the
// Player. A value on resize causes a full redraw.
func (p *Player) Run(in io.Reader, e *reader.Engine, c clock.Clock, resize <-chan os.Signal) error {
	detach := p.attach(e, c)
	defer detach()

	go p.readKeys(term.NewReader(in))
	if resize != nil {
		go func() {
			for {
				select {
				case <-resize:
					p.lp.Resize()
				case <-p.lp.Done():
					return
				}
			}
		}()
	}
	return p.lp.Run()
}

func (p *Player) attach(e *reader.Engine, c clock.Clock) func() {
	p.engine = e
	p.release = debounce.New(c, p.cfg.HoldRelease, p.endHold)
	unsubscribe := e.Subscribe(func(reader.Snapshot) { p.lp.Invalidate() })
	return func() {
		unsubscribe()
		if p.holding {
			p.endHold()
		}
		p.release.Stop()
	}
}

// readKeys feeds keys from rd to the loop. It returns at the end of input, or
// at the first key read after the loop has finished.
func (p *Player) readKeys(rd *term.Reader) {
	for {
		k, err := rd.ReadKey()
		if err != nil {
			var seqErr term.SeqError
			if errors.As(err, &seqErr) {
				logger.Println("ignoring", seqErr)
				continue
			}
			p.lp.InputEnded(err)
			return
		}
		if !p.lp.Key(k) {
			return
		}
	}
}

func (p *Player) handleKey(k term.Key) {
	e := p.engine
	settings := e.Snapshot().Settings
	switch k {
	case term.K(' '):
		if settings.Mode != reader.HoldSpace {
			e.TogglePlayPause()
			return
		}
		// Terminals report no key release. Auto-repeat keeps the release
		// timer from firing for as long as the key is down.
		if !p.holding {
			p.holding = true
			e.HoldStart()
		}
		p.release.Trigger()
	case term.K(term.Left):
		e.StepBackward(1)
	case term.K(term.Right):
		e.StepForward(1)
	case term.K(term.Up), term.K('+'), term.K('='):
		e.AdjustWPM(reader.WPMStep)
	case term.K(term.Down), term.K('-'):
		e.AdjustWPM(-reader.WPMStep)
	case term.K(term.Home):
		e.SeekTo(0)
	case term.K(term.End):
		e.SeekTo(e.Len() - 1)
	case term.K('m'):
		if p.holding {
			p.release.Cancel()
			p.endHold()
		}
		if settings.Mode == reader.Autoplay {
			e.SetMode(reader.HoldSpace)
		} else {
			e.SetMode(reader.Autoplay)
		}
	case term.K('p'):
		e.SetPunctuationPause(!settings.PunctuationPause)
	case term.K('r'):
		e.SetSoftRewind(!settings.SoftRewind)
	case term.K('q'), term.K('c', term.Ctrl), term.K(term.Escape):
		p.lp.Quit(nil)
	default:
		logger.Println("unbound key", k)
	}
}

func (p *Player) endHold() {
	p.holding = false
	p.engine.HoldEnd()
}

func (p *Player) redraw(clear bool) {
	width, height := p.cfg.Size()
	var sb strings.Builder
	if clear {
		sb.WriteString("\033[2J")
	}
	sb.WriteString("\033[H")
	frame := ui.Frame(p.engine, width, height, p.cfg.Styles)
	sb.WriteString(strings.ReplaceAll(frame, "\n", "\033[K\r\n"))
	sb.WriteString("\033[K\033[J")
	if _, err := io.WriteString(p.cfg.Out, sb.String()); err != nil {
		logger.Println("cannot write frame:", err)
	}
}
