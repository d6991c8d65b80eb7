package reader

import (
	"fmt"
	"math"
)

// Bounds and granularity of the reading speed, in words per minute.
const (
	WPMMin  = 50
	WPMMax  = 1000
	WPMStep = 50
)

// Mode is the interaction mode of the Engine.
type Mode int

// Possible values for Mode.
const (
	// Autoplay toggles between playing and paused.
	Autoplay Mode = iota
	// HoldSpace plays only while a control is held down, like a deadman
	// switch.
	HoldSpace
)

func (m Mode) String() string {
	switch m {
	case Autoplay:
		return "autoplay"
	case HoldSpace:
		return "hold-space"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the string form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "autoplay":
		return Autoplay, nil
	case "hold-space":
		return HoldSpace, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, should be autoplay or hold-space", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	mode, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Settings control the pace and interaction of the Engine.
type Settings struct {
	WPM              int
	Mode             Mode
	PunctuationPause bool
	SoftRewind       bool
	// SoftRewindWords is the number of positions to step back when resuming
	// from a pause with SoftRewind on.
	SoftRewindWords int
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		WPM:              300,
		Mode:             Autoplay,
		PunctuationPause: true,
		SoftRewind:       true,
		SoftRewindWords:  5,
	}
}

// Normalize returns s with WPM snapped into range and a non-negative
// SoftRewindWords.
func (s Settings) Normalize() Settings {
	s.WPM = SnapWPM(s.WPM)
	if s.SoftRewindWords < 0 {
		s.SoftRewindWords = 0
	}
	return s
}

// SnapWPM rounds wpm to the nearest multiple of WPMStep and clamps it into
// [WPMMin, WPMMax].
func SnapWPM(wpm int) int {
	// Clamp first so that extreme values cannot overflow.
	wpm = clamp(wpm, WPMMin, WPMMax)
	return int(math.Round(float64(wpm)/WPMStep)) * WPMStep
}

// SettingsPatch is a partial update of Settings. Nil fields are left alone.
type SettingsPatch struct {
	WPM              *int
	Mode             *Mode
	PunctuationPause *bool
	SoftRewind       *bool
	SoftRewindWords  *int
}

// Apply returns s with the patch applied, normalized.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.WPM != nil {
		s.WPM = *p.WPM
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.PunctuationPause != nil {
		s.PunctuationPause = *p.PunctuationPause
	}
	if p.SoftRewind != nil {
		s.SoftRewind = *p.SoftRewind
	}
	if p.SoftRewindWords != nil {
		s.SoftRewindWords = *p.SoftRewindWords
	}
	return s.Normalize()
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
