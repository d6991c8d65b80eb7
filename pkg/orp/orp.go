// Package orp locates the optimal recognition point (ORP) of a word, the
// letter the eye should fixate on for the fastest recognition, and splits a
// word around it.
//
// All indices in this package count grapheme clusters, not bytes or runes, so
// that a multi-byte character is never split in the middle.
package orp

import (
	"math"
	"unicode"

	"github.com/rivo/uniseg"
)

// Bias is the fraction of the core length at which the ORP sits. It puts the
// fixation slightly left of the visual center, more so for longer words.
const Bias = 0.35

// Analyze returns the core of display, which is display with leading and
// trailing graphemes that contain no letter or digit removed, and the ORP
// index of display.
//
// The index is counted from the start of display, but computed from the core,
// so that the fixation point is a real letter whenever the word has one. The
// core may be empty, in which case the index is 0.
func Analyze(display string) (core string, index int) {
	bounds := graphemeBounds(display)
	first, last := -1, -1
	for i, b := range bounds {
		if isWordGrapheme(display[b[0]:b[1]]) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return "", 0
	}
	core = display[bounds[first][0]:bounds[last][1]]
	return core, clamp(first+coreIndex(last-first+1), 0, len(bounds)-1)
}

// Index returns the ORP index of display. See Analyze for details.
func Index(display string) int {
	_, i := Analyze(display)
	return i
}

// coreIndex returns the ORP index within a core of n graphemes.
func coreIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return clamp(int(math.Round(float64(n)*Bias)), 0, n-1)
}

// Split splits display into the part before the grapheme at index i, that
// grapheme, and the part after it. The index is clamped into range first; the
// three parts always concatenate to display. An empty display yields three
// empty strings.
func Split(display string, i int) (left, orp, right string) {
	bounds := graphemeBounds(display)
	if len(bounds) == 0 {
		return "", "", ""
	}
	b := bounds[clamp(i, 0, len(bounds)-1)]
	return display[:b[0]], display[b[0]:b[1]], display[b[1]:]
}

// Len returns the number of graphemes in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func graphemeBounds(s string) [][2]int {
	var bounds [][2]int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, to := g.Positions()
		bounds = append(bounds, [2]int{from, to})
	}
	return bounds
}

func isWordGrapheme(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
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
