// Package token turns raw text into the sequence of display units shown by
// the reader, each with a precomputed fixation point.
package token

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quickread/quickread/pkg/orp"
)

// Kind distinguishes the variants of Token.
type Kind int

// Possible values for Kind.
const (
	// Word is a whitespace-delimited word, punctuation included.
	Word Kind = iota
	// Break marks a paragraph boundary. It has no displayable letters.
	Break
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Break:
		return "break"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one display unit. Tokens are created by Tokenize and never
// modified afterwards.
type Token struct {
	// ID identifies the token within its document. It is derived from the
	// normalized text and the token's position, so it stays the same across
	// re-renders and re-tokenizations of the same text.
	ID   uuid.UUID
	Kind Kind
	// Display is the exact string to show, including attached punctuation.
	// Empty for Break tokens.
	Display string
	// Core is Display without leading and trailing punctuation. It may be
	// empty for punctuation-only words.
	Core string
	// ORPIndex is the grapheme index of the fixation letter in Display. It is
	// always a valid index for Word tokens and 0 for Break tokens.
	ORPIndex int
	// CharStart and CharEnd are the byte offsets of the token in the
	// normalized text. A Break token spans the paragraph separator.
	CharStart, CharEnd int
}

// Split splits the display string of t around its fixation letter. Break
// tokens and a nil token yield three empty strings.
func (t *Token) Split() (left, mid, right string) {
	if t == nil {
		return "", "", ""
	}
	switch t.Kind {
	case Word:
		return orp.Split(t.Display, t.ORPIndex)
	case Break:
		return "", "", ""
	default:
		panic(fmt.Sprintf("unknown token kind %v", t.Kind))
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Break:
		return "¶"
	default:
		return t.Display
	}
}

// Lookup maps token IDs back to their positions in a sequence, so that a
// token picked by identity (for instance a clicked word) can be sought to.
type Lookup map[uuid.UUID]int

// NewLookup builds a Lookup for tokens.
func NewLookup(tokens []Token) Lookup {
	l := make(Lookup, len(tokens))
	for i, t := range tokens {
		l[t.ID] = i
	}
	return l
}

// IndexOf returns the index of the token with the given ID, or -1 if there is
// no such token.
func (l Lookup) IndexOf(id uuid.UUID) int {
	if i, ok := l[id]; ok {
		return i
	}
	return -1
}

// WordCount returns the number of Word tokens in tokens.
func WordCount(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == Word {
			n++
		}
	}
	return n
}
