// Package fonts holds the bitmap font shared by the on-screen overlays.
package fonts

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// System is used for the HUD, the log console and the panic screen.
var System tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	// LineHeight is the vertical pitch of one text row in pixels.
	LineHeight = 10
	// Baseline is the offset from the top of a row to the glyph origin.
	Baseline = 6
	// Advance bounds the horizontal advance of a single glyph.
	Advance = 7
)
