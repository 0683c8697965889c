package render

import "fixbrot/fractal"

const (
	// BatchSize bounds the results consumed per Service call. It is also the
	// ring depth of each worker.
	BatchSize = 256

	// CoarseStep is the spacing of the seed grid. Seeds sit at
	// CoarseStep/2 + k*CoarseStep.
	CoarseStep = 16

	// QueueDepthFactor sizes the pending queue as (Width+Height)*QueueDepthFactor.
	QueueDepthFactor = 16

	// MinScaleExp is the widest view.
	MinScaleExp = -3

	// InitScaleExp is the scale exponent of a fresh scene.
	InitScaleExp = -2

	// ZoomDurationMs is the length of the zoom tween.
	ZoomDurationMs = 200

	// MaxPaletteSize is the size of the palette at slope 0.
	MaxPaletteSize = 1 << 9

	// MaxPaletteSlope is the steepest palette slope.
	MaxPaletteSlope = 4

	// DefaultPaletteSlope is the slope of a fresh palette.
	DefaultPaletteSlope = 2
)

// Iteration caps per storage width.
const (
	MaxIter16 = int(fractal.Capped)
	MaxIter12 = 1<<12 - 3
)

// Colors used outside the palette.
const (
	colorBlank    uint16 = 0x0000
	colorInSet    uint16 = 0x0000
	colorSentinel uint16 = 0xFFE0
	dimMask       uint16 = 0x7BEF
)
