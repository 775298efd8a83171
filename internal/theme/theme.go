package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the built-in theme files.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the color palette for the application UI and drawing surface.
type Theme struct {
	Name string
	Dark bool

	// General
	Background color.RGBA // Window background behind panels and canvas
	Foreground color.RGBA // Main text color

	// Panels
	ToolbarBackground color.RGBA
	PanelBackground   color.RGBA // Shape list and property panel
	PanelBorder       color.RGBA
	RowSelected       color.RGBA // Highlighted shape list row
	RowHidden         color.RGBA // Text of rows whose shape is hidden

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Currently active tool
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonBorder           color.RGBA

	// Canvas
	Canvas    color.RGBA
	Selection color.RGBA // Halo drawn around the selected shape
}

// Light returns the built-in light theme.
func Light() *Theme {
	return &Theme{
		Name:                   "Light",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		PanelBackground:        color.RGBA{236, 236, 236, 255},
		PanelBorder:            color.RGBA{160, 160, 160, 255},
		RowSelected:            color.RGBA{190, 210, 240, 255},
		RowHidden:              color.RGBA{140, 140, 140, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextActive:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		Canvas:                 color.RGBA{255, 255, 255, 255},
		Selection:              color.RGBA{0, 120, 255, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                   "Dark",
		Dark:                   true,
		Background:             color.RGBA{43, 43, 43, 255},
		Foreground:             color.RGBA{230, 230, 230, 255},
		ToolbarBackground:      color.RGBA{50, 50, 50, 255},
		PanelBackground:        color.RGBA{60, 63, 65, 255},
		PanelBorder:            color.RGBA{90, 90, 90, 255},
		RowSelected:            color.RGBA{33, 66, 131, 255},
		RowHidden:              color.RGBA{120, 120, 120, 255},
		ButtonBackground:       color.RGBA{75, 75, 75, 255},
		ButtonBackgroundHover:  color.RGBA{95, 95, 95, 255},
		ButtonBackgroundActive: color.RGBA{120, 120, 120, 255},
		ButtonText:             color.RGBA{230, 230, 230, 255},
		ButtonTextActive:       color.RGBA{255, 255, 255, 255},
		ButtonBorder:           color.RGBA{20, 20, 20, 255},
		Canvas:                 color.RGBA{207, 207, 207, 255},
		Selection:              color.RGBA{255, 170, 0, 255},
	}
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme { return Light() }

// Opposite returns the built-in theme of the other brightness.
func Opposite(t *Theme) *Theme {
	if t != nil && t.Dark {
		return Light()
	}
	return Dark()
}
