package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/quickread/quickread/pkg/token"
)

// Number of tokens on either side of the current one that are considered for
// the text flow.
const flowContext = 200

// Flow renders the text around tokens[index], wrapped to width, as at most
// height lines. The current token is highlighted, and the window is placed so
// that its line is in the upper third.
func Flow(tokens []token.Token, index, width, height int, st Styles) []string {
	if len(tokens) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	from := max(0, index-flowContext)
	to := min(len(tokens), index+flowContext+1)

	var sb strings.Builder
	var curLine int
	atLineStart := true
	for i := from; i < to; i++ {
		t := tokens[i]
		switch t.Kind {
		case token.Break:
			if i == index {
				sb.WriteString("\n" + st.Current.Render(ParagraphMark) + "\n")
			} else {
				sb.WriteString("\n\n")
			}
			atLineStart = true
		case token.Word:
			if !atLineStart {
				sb.WriteByte(' ')
			}
			if i == index {
				sb.WriteString(st.Current.Render(t.Display))
			} else {
				sb.WriteString(t.Display)
			}
			atLineStart = false
		}
		if i == index {
			// Greedy wrapping is stable on prefixes, so the line count of the
			// text so far locates the current token.
			curLine = strings.Count(wordwrap.String(sb.String(), width), "\n")
		}
	}

	lines := strings.Split(wordwrap.String(sb.String(), width), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	start := curLine - height/3
	if start > len(lines)-height {
		start = len(lines) - height
	}
	if start < 0 {
		start = 0
	}
	end := min(len(lines), start+height)
	return lines[start:end]
}
