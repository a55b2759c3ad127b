// Package ui holds the shared lipgloss styles for command output.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary)

	Highlight = lipgloss.NewStyle().
			Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(colorSuccess)

	Error = lipgloss.NewStyle().
		Foreground(colorDanger)

	Warning = lipgloss.NewStyle().
		Foreground(colorWarning)

	Muted = lipgloss.NewStyle().
		Foreground(colorMuted)
)

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	return Muted.Render(strings.Repeat("─", width))
}

// Tag renders a bracketed resource tag list ("[skills, hooks]").
func Tag(flags []string) string {
	if len(flags) == 0 {
		return Muted.Render("[minimal]")
	}
	return Muted.Render("[" + strings.Join(flags, ", ") + "]")
}
