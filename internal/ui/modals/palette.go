package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the part of the active theme that modals draw with.
type Palette struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style

	Accent  color.Color
	Heading color.Color
	Text    color.Color
	Muted   color.Color
	Inverse color.Color
	Warning color.Color
}

// Modal sizes in cells.
const (
	DefaultWidth   = 60
	WideWidth      = 72
	InputWidth     = 50
	InputCharLimit = 256
	HelpMaxVisible = 14
)

var pal Palette

// UsePalette replaces the palette. The ui package calls it whenever the
// theme changes; forms built afterwards pick up the new colors.
func UsePalette(p Palette) { pal = p }

// CurrentPalette returns the palette in use.
func CurrentPalette() Palette { return pal }
