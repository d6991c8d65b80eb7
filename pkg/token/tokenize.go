package token

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quickread/quickread/pkg/orp"
)

// ParagraphSeparator separates paragraphs in the normalized text.
const ParagraphSeparator = "\n\n"

// Namespace of document IDs. Token IDs live in a namespace derived from their
// document ID.
var docSpace = uuid.MustParse("6f1c2a9e-3b7d-4c55-9a0e-2d8b1f4e7c31")

// ValidationError is returned by Tokenize when the input cannot be turned into
// a token sequence.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid text: " + e.Reason
}

// Result is the output of Tokenize.
type Result struct {
	// DocID identifies the normalized text.
	DocID uuid.UUID
	// FullText is the normalized text. Offsets in Tokens refer to it.
	FullText string
	Tokens   []Token
}

var newlines = strings.NewReplacer(
	"\r\n", "\n", "\r", "\n",
	// Explicit paragraph markers.
	"\f", "\n\n", "\u2029", "\n\n")

// Tokenize normalizes raw text and splits it into tokens.
//
// Line endings are normalized, and two or more consecutive newlines (lines
// containing only whitespace included), a form feed or a Unicode paragraph
// separator start a new paragraph. Within a paragraph, every run of
// whitespace becomes one space; paragraphs are joined by ParagraphSeparator.
// One Word token is emitted per word, and one Break token between adjacent
// paragraphs.
//
// It returns a *ValidationError if raw contains no words.
func Tokenize(raw string) (Result, error) {
	paras := paragraphs(raw)
	if len(paras) == 0 {
		return Result{}, &ValidationError{"text is empty or whitespace-only"}
	}

	var (
		sb     strings.Builder
		tokens []Token
	)
	for i, words := range paras {
		if i > 0 {
			start := sb.Len()
			sb.WriteString(ParagraphSeparator)
			tokens = append(tokens, Token{
				Kind: Break, CharStart: start, CharEnd: sb.Len()})
		}
		for j, word := range words {
			if j > 0 {
				sb.WriteByte(' ')
			}
			start := sb.Len()
			sb.WriteString(word)
			core, orpIndex := orp.Analyze(word)
			tokens = append(tokens, Token{
				Kind: Word, Display: word, Core: core, ORPIndex: orpIndex,
				CharStart: start, CharEnd: sb.Len()})
		}
	}

	fullText := sb.String()
	docID := uuid.NewSHA1(docSpace, []byte(fullText))
	for i := range tokens {
		tokens[i].ID = uuid.NewSHA1(docID, []byte(strconv.Itoa(i)))
	}
	return Result{DocID: docID, FullText: fullText, Tokens: tokens}, nil
}

// paragraphs splits raw into paragraphs, each a non-empty list of words.
func paragraphs(raw string) [][]string {
	var (
		paras   [][]string
		current []string
	)
	for _, line := range strings.Split(newlines.Replace(raw), "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			if len(current) > 0 {
				paras = append(paras, current)
				current = nil
			}
			continue
		}
		current = append(current, words...)
	}
	if len(current) > 0 {
		paras = append(paras, current)
	}
	return paras
}
