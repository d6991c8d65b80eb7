package reader

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quickread/quickread/pkg/token"
)

// Punct classifies the punctuation a word ends with.
type Punct int

// Possible values for Punct.
const (
	NoPunct Punct = iota
	// ClausePunct is one of , ; :
	ClausePunct
	// SentencePunct is one of . ! ? …
	SentencePunct
)

// Closing quotes and brackets are looked through when classifying the
// trailing punctuation, so that `end.)` and `said."` count as sentence ends.
const closers = `"')]}’”»`

// TrailingPunct classifies the punctuation display ends with.
func TrailingPunct(display string) Punct {
	r, _ := utf8.DecodeLastRuneInString(strings.TrimRight(display, closers))
	switch r {
	case '.', '!', '?', '…':
		return SentencePunct
	case ',', ';', ':':
		return ClausePunct
	default:
		return NoPunct
	}
}

// TimedToken is a Token together with how long it stays on screen.
type TimedToken struct {
	token.Token
	Delay time.Duration
}

// BaseDelay returns the time per word at the given rate.
func BaseDelay(wpm int) time.Duration {
	return time.Minute / time.Duration(SnapWPM(wpm))
}

// Delay returns how long t stays on screen under s.
//
// A word is shown for the base delay. With punctuation pause on, a sentence
// end adds another base delay and a clause separator half of one. A paragraph
// break is always shown for one and a half base delays.
func Delay(t *token.Token, s Settings) time.Duration {
	base := BaseDelay(s.WPM)
	switch t.Kind {
	case token.Break:
		return base * 3 / 2
	case token.Word:
		if s.PunctuationPause {
			switch TrailingPunct(t.Display) {
			case SentencePunct:
				return base * 2
			case ClausePunct:
				return base * 3 / 2
			}
		}
		return base
	default:
		return base
	}
}
