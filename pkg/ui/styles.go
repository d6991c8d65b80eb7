// Package ui renders the reader: the focus word with its fixation letter on a
// fixed column, a status line, and the text flowing around the current word.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles used by the renderer.
type Styles struct {
	// The fixation letter of the focus word.
	ORP lipgloss.Style
	// Guides, the status line and paragraph marks.
	Dim lipgloss.Style
	// The current word in the text flow.
	Current lipgloss.Style
}

// DefaultStyles returns the styles for a terminal served by r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		ORP:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:     r.NewStyle().Faint(true),
		Current: r.NewStyle().Reverse(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	return Styles{lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()}
}
