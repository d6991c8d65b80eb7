package ui_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"

	"github.com/quickread/quickread/pkg/clock/clocktest"
	"github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/token"
	. "github.com/quickread/quickread/pkg/ui"
)

var plain = PlainStyles()

func tokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	res, err := token.Tokenize(text)
	if err != nil {
		t.Fatal(err)
	}
	return res.Tokens
}

func TestFocus_AlignsORP(t *testing.T) {
	tokens := tokenize(t, "Hello, a internationalization 日本語")
	// Wide enough for every word to fit whole.
	const width = 60
	col := FocusColumn(width)
	for i := range tokens {
		tok := &tokens[i]
		line := Focus(tok, width, plain)
		left, mid, _ := tok.Split()
		if w := runewidth.StringWidth(line); w > width {
			t.Errorf("Focus(%q) is %d columns wide, want at most %d", tok.Display, w, width)
		}
		if !strings.Contains(line, tok.Display) {
			t.Errorf("Focus(%q) = %q, does not contain the word", tok.Display, line)
			continue
		}
		prefix := line[:strings.Index(line, tok.Display)+len(left)]
		if w := runewidth.StringWidth(prefix); w != col {
			t.Errorf("Focus(%q) puts ORP %q at column %d, want %d", tok.Display, mid, w, col)
		}
	}
}

func TestFocus_Overflow(t *testing.T) {
	tokens := tokenize(t, "Pneumonoultramicroscopicsilicovolcanoconiosis")
	line := Focus(&tokens[0], 10, plain)
	if w := runewidth.StringWidth(line); w > 10 {
		t.Errorf("Focus of a long word is %d columns wide: %q", w, line)
	}
	_, mid, _ := tokens[0].Split()
	if !strings.Contains(line, mid) {
		t.Errorf("Focus of a long word %q lost the ORP letter %q", line, mid)
	}
}

func TestFocus_BreakAndNil(t *testing.T) {
	brk := &token.Token{Kind: token.Break}
	if got, want := Focus(brk, 10, plain), "    "+ParagraphMark; got != want {
		t.Errorf("Focus(break) = %q, want %q", got, want)
	}
	if got := Focus(nil, 10, plain); got != "" {
		t.Errorf("Focus(nil) = %q, want empty", got)
	}
}

func TestStatus(t *testing.T) {
	s := reader.Snapshot{State: reader.Playing, Index: 4, Settings: reader.Settings{
		WPM: 350, Mode: reader.HoldSpace, PunctuationPause: true, SoftRewind: true, SoftRewindWords: 5}}
	want := "▶ 350 wpm · hold-space · 5/9 (50%) · pauses · rewind 5"
	if got := Status(s, 9, 80, plain); got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
	if got := Status(reader.Snapshot{}, 0, 80, plain); !strings.Contains(got, "0/0") {
		t.Errorf("Status() of an empty engine = %q", got)
	}
	if got := Status(s, 9, 12, plain); runewidth.StringWidth(got) > 12 {
		t.Errorf("Status() not truncated: %q", got)
	}
}

func TestFlow(t *testing.T) {
	tokens := tokenize(t, "one two three four five six\n\nseven eight nine ten")
	got := Flow(tokens, 7, 10, 10, plain)
	want := []string{
		"one two",
		"three four",
		"five six",
		"",
		"seven",
		"eight nine",
		"ten",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flow (-want +got):\n%s", diff)
	}

	// The window follows the current token.
	got = Flow(tokens, 10, 10, 3, plain)
	if diff := cmp.Diff([]string{"seven", "eight nine", "ten"}, got); diff != "" {
		t.Errorf("Flow at the end (-want +got):\n%s", diff)
	}

	// The current break shows as a paragraph mark.
	got = Flow(tokens, 6, 10, 10, plain)
	if got[3] != ParagraphMark {
		t.Errorf("Flow at a break = %q", got)
	}

	if got := Flow(nil, 0, 10, 10, plain); got != nil {
		t.Errorf("Flow(nil) = %q", got)
	}
}

func TestFrame(t *testing.T) {
	tokens := tokenize(t, "alpha beta gamma")
	e := reader.NewEngine(tokens, 1, reader.DefaultSettings(), clocktest.New())
	frame := Frame(e, 30, 12, plain)
	lines := strings.Split(frame, "\n")
	if len(lines) != 12 {
		t.Errorf("Frame has %d lines, want 12:\n%s", len(lines), frame)
	}
	if !strings.Contains(frame, "beta") || !strings.Contains(frame, "2/3") {
		t.Errorf("Frame does not show the current word and position:\n%s", frame)
	}

	small := Frame(e, 30, 3, plain)
	if n := strings.Count(small, "\n") + 1; n != 3 {
		t.Errorf("small Frame has %d lines, want 3:\n%s", n, small)
	}
}
