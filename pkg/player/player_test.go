package player

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/quickread/quickread/pkg/clock"
	"github.com/quickread/quickread/pkg/clock/clocktest"
	"github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/term"
	"github.com/quickread/quickread/pkg/token"
	"github.com/quickread/quickread/pkg/ui"
)

const (
	ms          = time.Millisecond
	testTimeout = 5 * time.Second
)

// 200ms per word, no pauses.
var settings = reader.Settings{WPM: 300, Mode: reader.Autoplay}

func newEngine(t *testing.T, text string, s reader.Settings, c clock.Clock) *reader.Engine {
	t.Helper()
	res, err := token.Tokenize(text)
	if err != nil {
		t.Fatal(err)
	}
	e := reader.NewEngine(res.Tokens, 0, s, c)
	t.Cleanup(e.Close)
	return e
}

func setup(t *testing.T, s reader.Settings) (*Player, *reader.Engine, *clocktest.Fake) {
	t.Helper()
	c := clocktest.New()
	e := newEngine(t, "a b c d e f g h i j", s, c)
	p := New(Config{Out: &bytes.Buffer{}, Styles: ui.PlainStyles()})
	t.Cleanup(p.attach(e, c))
	return p, e, c
}

func wantSnapshot(t *testing.T, e *reader.Engine, state reader.State, index int) {
	t.Helper()
	s := e.Snapshot()
	if s.State != state || s.Index != index {
		t.Errorf("got (%v, %d), want (%v, %d)", s.State, s.Index, state, index)
	}
}

func TestPlayer_SpaceTogglesInAutoplay(t *testing.T) {
	p, e, c := setup(t, settings)
	p.handleKey(term.K(' '))
	wantSnapshot(t, e, reader.Playing, 0)
	c.Advance(400 * ms)
	wantSnapshot(t, e, reader.Playing, 2)
	p.handleKey(term.K(' '))
	wantSnapshot(t, e, reader.Paused, 2)
}

func TestPlayer_HoldSpace(t *testing.T) {
	s := settings
	s.Mode = reader.HoldSpace
	p, e, c := setup(t, s)

	p.handleKey(term.K(' '))
	wantSnapshot(t, e, reader.Playing, 0)
	c.Advance(500 * ms)
	wantSnapshot(t, e, reader.Playing, 2)
	// Auto-repeat keeps the hold going.
	p.handleKey(term.K(' '))
	c.Advance(600 * ms)
	wantSnapshot(t, e, reader.Playing, 5)
	// Repeats stopped at 500ms; the hold ends at 1150ms.
	c.Advance(100 * ms)
	wantSnapshot(t, e, reader.Paused, 5)
	if p.holding {
		t.Errorf("still holding after release")
	}

	// Holding again resumes at the same position.
	p.handleKey(term.K(' '))
	wantSnapshot(t, e, reader.Playing, 5)
}

func TestPlayer_ModeSwitchEndsHold(t *testing.T) {
	s := settings
	s.Mode = reader.HoldSpace
	p, e, c := setup(t, s)
	p.handleKey(term.K(' '))
	p.handleKey(term.K('m'))
	wantSnapshot(t, e, reader.Paused, 0)
	if got := e.Snapshot().Settings.Mode; got != reader.Autoplay {
		t.Errorf("mode = %v, want autoplay", got)
	}
	if n := c.Pending(); n != 0 {
		t.Errorf("%d timers pending after mode switch", n)
	}
}

func TestPlayer_Keys(t *testing.T) {
	p, e, _ := setup(t, settings)

	p.handleKey(term.K(term.Right))
	p.handleKey(term.K(term.Right))
	wantSnapshot(t, e, reader.Idle, 2)
	p.handleKey(term.K(term.Left))
	wantSnapshot(t, e, reader.Idle, 1)
	p.handleKey(term.K(term.End))
	wantSnapshot(t, e, reader.Idle, 9)
	p.handleKey(term.K(term.Home))
	wantSnapshot(t, e, reader.Idle, 0)

	p.handleKey(term.K(term.Up))
	p.handleKey(term.K('+'))
	if got := e.Snapshot().Settings.WPM; got != 400 {
		t.Errorf("wpm = %d, want 400", got)
	}
	p.handleKey(term.K(term.Down))
	if got := e.Snapshot().Settings.WPM; got != 350 {
		t.Errorf("wpm = %d, want 350", got)
	}

	p.handleKey(term.K('p'))
	p.handleKey(term.K('r'))
	got := e.Snapshot().Settings
	if !got.PunctuationPause || !got.SoftRewind {
		t.Errorf("settings after p and r = %+v", got)
	}
	p.handleKey(term.K('m'))
	if got := e.Snapshot().Settings.Mode; got != reader.HoldSpace {
		t.Errorf("mode = %v, want hold-space", got)
	}
}

func TestPlayer_Run(t *testing.T) {
	e := newEngine(t, "alpha beta", settings, clocktest.New())
	var out bytes.Buffer
	p := New(Config{Out: &out, Styles: ui.PlainStyles(),
		Size: func() (int, int) { return 40, 10 }})
	if err := p.Run(strings.NewReader("\033[Cq"), e, clocktest.New(), nil); err != nil {
		t.Errorf("Run() -> %v, want nil", err)
	}
	if !strings.HasPrefix(out.String(), "\033[2J\033[H") {
		t.Errorf("first frame does not clear the screen: %q", out.String())
	}
	if !strings.Contains(out.String(), "beta") {
		t.Errorf("output does not show the second word: %q", out.String())
	}
	wantSnapshot(t, e, reader.Idle, 1)
}

func TestPlayer_Run_RealClock(t *testing.T) {
	p := New(Config{Out: &bytes.Buffer{}, Styles: ui.PlainStyles()})
	c := clock.NewReal(p.Post)
	e := newEngine(t, "a b c", reader.Settings{WPM: reader.WPMMax}, c)

	// Play, then quit once the engine reaches the end.
	e.Subscribe(func(s reader.Snapshot) {
		if s.State == reader.Idle && s.Index == 2 {
			p.lp.Quit(nil)
		}
	})
	r, w := ioPipe(t)
	w.Write([]byte(" "))
	if err := p.Run(r, e, c, nil); err != nil {
		t.Errorf("Run() -> %v, want nil", err)
	}
}

func TestPlayer_Run_EOFAndErrors(t *testing.T) {
	e := newEngine(t, "a", settings, clocktest.New())
	p := New(Config{Out: &bytes.Buffer{}, Styles: ui.PlainStyles()})
	if err := p.Run(strings.NewReader(""), e, clocktest.New(), nil); err != nil {
		t.Errorf("Run() at EOF -> %v, want nil", err)
	}

	errRead := errors.New("read error")
	p = New(Config{Out: &bytes.Buffer{}, Styles: ui.PlainStyles()})
	if err := p.Run(iotest.ErrReader(errRead), e, clocktest.New(), nil); err != errRead {
		t.Errorf("Run() -> %v, want %v", err, errRead)
	}
}

func TestPlayer_StopsReadingKeysAfterRun(t *testing.T) {
	e := newEngine(t, "a b c", settings, clocktest.New())
	p := New(Config{Out: &bytes.Buffer{}, Styles: ui.PlainStyles()})
	if err := p.Run(strings.NewReader("q"), e, clocktest.New(), nil); err != nil {
		t.Fatalf("Run() -> %v, want nil", err)
	}

	// Far more keys than the loop can queue; reading must not block.
	keys := strings.Repeat(" ", 4*inboxSize)
	returned := make(chan struct{})
	go func() {
		p.readKeys(term.NewReader(strings.NewReader(keys)))
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(testTimeout):
		t.Fatalf("readKeys still running after Run returned")
	}
	p.Post(func() { t.Errorf("posted function called after Run returned") })
	wantSnapshot(t, e, reader.Idle, 0)
}

func ioPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}
