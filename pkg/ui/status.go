package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/quickread/quickread/pkg/reader"
)

var stateIcons = map[reader.State]string{
	reader.Idle:    "■",
	reader.Playing: "▶",
	reader.Paused:  "❚❚",
}

// Status renders the status line for snapshot s of an engine with n tokens,
// truncated to width.
func Status(s reader.Snapshot, n, width int, st Styles) string {
	pos := 0
	if n > 0 {
		pos = s.Index + 1
	}
	percent := 100
	if n > 1 {
		percent = s.Index * 100 / (n - 1)
	}
	line := fmt.Sprintf("%s %d wpm · %s · %d/%d (%d%%)",
		stateIcons[s.State], s.Settings.WPM, s.Settings.Mode, pos, n, percent)
	if s.Settings.PunctuationPause {
		line += " · pauses"
	}
	if s.Settings.SoftRewind {
		line += fmt.Sprintf(" · rewind %d", s.Settings.SoftRewindWords)
	}
	return st.Dim.Render(runewidth.Truncate(line, width, "…"))
}

// Help is the key reference shown below the status line.
const Help = "space play/hold · ←/→ step · ↑/↓ speed · home/end · m mode · p pauses · r rewind · q quit"
