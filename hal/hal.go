// Package hal is the boundary between fixbrot and the machine it runs on:
// a log sink, an activity LED, an RGB565 framebuffer, a keyboard, a serial
// line and a millisecond tick source.
package hal

import "io"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is lit by the explorer while a render pass is running.
type LED interface {
	High()
	Low()
}

// Serial is a byte stream to an operator terminal. Read may return an error
// when no data is available; callers retry on the next tick.
type Serial interface {
	io.Reader
	io.Writer
}

type PixelFormat uint8

// PixelFormatRGB565 is 16bpp little-endian rrrrrggg gggbbbbb.
const PixelFormatRGB565 PixelFormat = 1

// Framebuffer is a CPU-side pixel buffer. Present makes the current
// contents visible.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyHome
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent carries either a Code for navigation keys or a Rune for text.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

type Keyboard interface {
	Events() <-chan KeyEvent
}

type Display interface {
	Framebuffer() Framebuffer
}

type Input interface {
	Keyboard() Keyboard
}

// Time delivers one sequence number per millisecond. Slow consumers see
// gaps, never duplicates.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is everything the system needs from the platform. Any accessor may
// return nil when the device is absent.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Input() Input
	Serial() Serial
	Time() Time
}
