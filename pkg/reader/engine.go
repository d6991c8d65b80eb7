// Package reader implements the reader engine, a timer-driven state machine
// that advances through a token sequence at a punctuation-aware pace.
//
// The Engine is not safe for concurrent use. All commands, as well as the
// callbacks of its clock, must run on one goroutine; see clock.Real for how
// timer fires are brought onto that goroutine.
package reader

import (
	"fmt"

	"github.com/quickread/quickread/pkg/clock"
	"github.com/quickread/quickread/pkg/token"
)

// State is the playback state of the Engine.
type State int

// Possible values for State.
const (
	// Idle is the initial state, and the state after the last token has been
	// shown.
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is the externally observable state of the Engine.
type Snapshot struct {
	State    State
	Index    int
	Settings Settings
}

// Engine schedules the presentation of a fixed token sequence.
type Engine struct {
	tokens []token.Token
	clock  clock.Clock

	state    State
	index    int
	settings Settings
	// Whether the sequence has been played to the end since the last change
	// of position.
	finished bool

	// The only outstanding timer, or 0.
	timer clock.Handle

	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	f  func(Snapshot)
}

// NewEngine creates an Engine for tokens, positioned at start (clamped into
// range) and in the Idle state. The token slice must not be modified
// afterwards. An empty sequence is allowed; all position and playback
// commands are then no-ops.
func NewEngine(tokens []token.Token, start int, settings Settings, c clock.Clock) *Engine {
	e := &Engine{tokens: tokens, clock: c, settings: settings.Normalize()}
	if len(tokens) > 0 {
		e.index = clamp(start, 0, len(tokens)-1)
	}
	return e
}

// Snapshot returns the current state of the Engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{State: e.state, Index: e.index, Settings: e.settings}
}

// Tokens returns the token sequence. It must not be modified.
func (e *Engine) Tokens() []token.Token { return e.tokens }

// Len returns the number of tokens.
func (e *Engine) Len() int { return len(e.tokens) }

// Current returns the current token with its on-screen duration under the
// current settings. It returns false if the sequence is empty.
func (e *Engine) Current() (TimedToken, bool) {
	if len(e.tokens) == 0 {
		return TimedToken{}, false
	}
	t := &e.tokens[e.index]
	return TimedToken{*t, Delay(t, e.settings)}, true
}

// Subscribe registers f to be called with the new snapshot after every
// change, whether caused by a command or by a timer fire. It returns a
// function that unregisters f.
func (e *Engine) Subscribe(f func(Snapshot)) (unsubscribe func()) {
	e.nextSubID++
	id := e.nextSubID
	e.subscribers = append(e.subscribers, subscriber{id, f})
	return func() {
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Play starts or restarts playback from the current token. When resuming
// from Paused with soft rewind on, it first steps back by up to
// SoftRewindWords positions. When called after the sequence has been played
// to the end, it starts over from the first token.
func (e *Engine) Play() {
	e.start(e.state == Paused && e.settings.SoftRewind)
}

// Pause stops playback without moving the position. It has no effect on the
// state unless playing.
func (e *Engine) Pause() {
	defer e.notifyIfChanged(e.Snapshot())
	e.cancel()
	if e.state == Playing {
		e.state = Paused
	}
}

// TogglePlayPause pauses if playing, and plays otherwise.
func (e *Engine) TogglePlayPause() {
	if e.state == Playing {
		e.Pause()
	} else {
		e.Play()
	}
}

// HoldStart starts playback in the HoldSpace mode. Unlike Play it never
// rewinds, so that holding again re-engages at the exact last position. It is
// a no-op in other modes.
func (e *Engine) HoldStart() {
	if e.settings.Mode != HoldSpace {
		return
	}
	e.start(false)
}

// HoldEnd stops playback and always lands in Paused, whatever the prior
// state. The Engine does not track whether a hold is in progress; callers
// owning key state should call HoldEnd before switching away from HoldSpace.
func (e *Engine) HoldEnd() {
	defer e.notifyIfChanged(e.Snapshot())
	e.cancel()
	if len(e.tokens) > 0 {
		e.state = Paused
	}
}

// StepForward moves the position n tokens forward, break tokens included,
// clamped to the sequence. The state is unchanged; if playing, the countdown
// restarts from the new token.
func (e *Engine) StepForward(n int) { e.SeekTo(e.index + n) }

// StepBackward moves the position n tokens backward. See StepForward.
func (e *Engine) StepBackward(n int) { e.SeekTo(e.index - n) }

// SeekTo moves the position to i, clamped to the sequence. See StepForward.
func (e *Engine) SeekTo(i int) {
	if len(e.tokens) == 0 {
		return
	}
	defer e.notifyIfChanged(e.Snapshot())
	e.cancel()
	e.index = clamp(i, 0, len(e.tokens)-1)
	e.finished = false
	if e.state == Playing {
		e.schedule()
	}
}

// AdjustWPM changes the speed by delta, snapped and clamped. The token
// currently counting down keeps its delay; the new speed applies from the
// next token.
func (e *Engine) AdjustWPM(delta int) {
	// The current value is in range, so a delta beyond the range saturates.
	delta = clamp(delta, -WPMMax, WPMMax)
	e.SetWPM(e.settings.WPM + delta)
}

// SetWPM sets the speed, snapped and clamped. See AdjustWPM.
func (e *Engine) SetWPM(wpm int) { e.UpdateSettings(SettingsPatch{WPM: &wpm}) }

// SetMode switches the interaction mode.
func (e *Engine) SetMode(m Mode) { e.UpdateSettings(SettingsPatch{Mode: &m}) }

// SetPunctuationPause turns the punctuation pause on or off.
func (e *Engine) SetPunctuationPause(b bool) {
	e.UpdateSettings(SettingsPatch{PunctuationPause: &b})
}

// SetSoftRewind turns soft rewind on or off.
func (e *Engine) SetSoftRewind(b bool) {
	e.UpdateSettings(SettingsPatch{SoftRewind: &b})
}

// UpdateSettings merges p into the settings. It never affects the position or
// the pending timer.
func (e *Engine) UpdateSettings(p SettingsPatch) {
	defer e.notifyIfChanged(e.Snapshot())
	e.settings = p.Apply(e.settings)
}

// Close cancels the pending timer and drops all subscribers. A playing Engine
// becomes Paused. It must be called when the Engine is discarded.
func (e *Engine) Close() {
	e.cancel()
	if e.state == Playing {
		e.state = Paused
	}
	e.subscribers = nil
}

func (e *Engine) start(rewind bool) {
	if len(e.tokens) == 0 {
		return
	}
	defer e.notifyIfChanged(e.Snapshot())
	e.cancel()
	if rewind {
		e.index -= min(e.settings.SoftRewindWords, e.index)
	}
	if e.state == Idle && e.finished {
		e.index = 0
	}
	e.finished = false
	e.state = Playing
	e.schedule()
}

func (e *Engine) tick() {
	defer e.notifyIfChanged(e.Snapshot())
	e.timer = 0
	e.index++
	if e.index >= len(e.tokens) {
		e.index = len(e.tokens) - 1
		e.state = Idle
		e.finished = true
		return
	}
	e.schedule()
}

func (e *Engine) schedule() {
	e.timer = e.clock.Schedule(Delay(&e.tokens[e.index], e.settings), e.tick)
}

func (e *Engine) cancel() {
	if e.timer != 0 {
		e.clock.Cancel(e.timer)
		e.timer = 0
	}
}

func (e *Engine) notifyIfChanged(old Snapshot) {
	snapshot := e.Snapshot()
	if snapshot == old {
		return
	}
	for _, s := range append([]subscriber(nil), e.subscribers...) {
		s.f(snapshot)
	}
}
