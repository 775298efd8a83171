package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/sketchpad/internal/theme"
)

// Styles
var (
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	errorFg   = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")

	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	errorStyle  = lipgloss.NewStyle().Foreground(errorFg)
	activeStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true).Underline(true)
)

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(theme.Hex(c))
}
