package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/quickread/quickread/pkg/reader"
)

// Frame renders a full screen of the given size for the engine e. Short
// screens drop the text flow first, then the help line.
func Frame(e *reader.Engine, width, height int, st Styles) string {
	snapshot := e.Snapshot()
	var focus string
	if cur, ok := e.Current(); ok {
		focus = Focus(&cur.Token, width, st)
	}
	bottom := []string{
		Guide(width, st),
		focus,
		Guide(width, st),
		"",
		Status(snapshot, e.Len(), width, st),
	}
	if height > len(bottom)+1 {
		bottom = append(bottom, st.Dim.Render(runewidth.Truncate(Help, width, "…")))
	}

	var lines []string
	if flowHeight := height - len(bottom) - 2; flowHeight > 0 {
		lines = append(lines, Flow(e.Tokens(), snapshot.Index, width, flowHeight, st)...)
		for len(lines) < flowHeight {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Repeat("─", width), "")
	}
	lines = append(lines, bottom...)
	if len(lines) > height && height > 0 {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}
