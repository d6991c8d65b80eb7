package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/quickread/quickread/pkg/token"
)

// ParagraphMark is shown in place of a paragraph break.
const ParagraphMark = "¶"

// FocusColumn returns the column the fixation letter is aligned to in a line
// of the given width.
func FocusColumn(width int) int {
	// Left of center, like the fixation point within a word.
	return width * 2 / 5
}

// Focus renders t on a line of the given width, with its fixation letter at
// FocusColumn. A paragraph break is shown as a dimmed ParagraphMark, and a
// nil token as an empty line.
func Focus(t *token.Token, width int, st Styles) string {
	if t == nil {
		return ""
	}
	col := FocusColumn(width)
	if t.Kind == token.Break {
		return strings.Repeat(" ", col) + st.Dim.Render(ParagraphMark)
	}
	left, mid, right := t.Split()
	pad := col - runewidth.StringWidth(left)
	if pad < 0 {
		// Too long to fit on the left; cut from the start.
		left = cutLeft(left, col)
		pad = col - runewidth.StringWidth(left)
	}
	room := width - col - runewidth.StringWidth(mid)
	if room < 0 {
		room = 0
	}
	right = runewidth.Truncate(right, room, "")
	return strings.Repeat(" ", pad) + left + st.ORP.Render(mid) + right
}

// Guide renders the tick above and below the focus word that marks the
// fixation column.
func Guide(width int, st Styles) string {
	return strings.Repeat(" ", FocusColumn(width)) + st.Dim.Render("│")
}

// cutLeft drops graphemes from the start of s until it is at most w columns
// wide.
func cutLeft(s string, w int) string {
	excess := runewidth.StringWidth(s) - w
	if excess <= 0 {
		return s
	}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		excess -= runewidth.StringWidth(g.Str())
		if excess <= 0 {
			_, to := g.Positions()
			return s[to:]
		}
	}
	return ""
}
