// Package ui provides the terminal presentation for the provisioner: shared
// lipgloss styles and the interactive run view.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles shared by CLI output and the interactive run view.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	ActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// Status glyphs used in step and check listings.
const (
	GlyphOK      = "✓"
	GlyphFail    = "✗"
	GlyphWarn    = "!"
	GlyphPending = "·"
)

// StatusGlyph renders a colored glyph for ok/warn/fail states.
func StatusGlyph(ok, warn bool) string {
	switch {
	case ok:
		return SuccessStyle.Render(GlyphOK)
	case warn:
		return WarningStyle.Render(GlyphWarn)
	default:
		return ErrorStyle.Render(GlyphFail)
	}
}
