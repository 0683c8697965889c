//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	fb     *memFramebuffer
	kbd    *hostKeyboard
	serial *hostSerial
	t      *hostTime
}

// New returns the desktop HAL with a 320x320 canvas.
func New() HAL { return newHost(defaultWidth, defaultHeight) }

func newHost(w, h int) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: os.Stderr},
		led:    &hostLED{},
		fb:     newMemFramebuffer(w, h, true),
		kbd:    newHostKeyboard(),
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return keyboardInput{kbd: h.kbd} }
func (h *hostHAL) Serial() Serial   { return h.serial }
func (h *hostHAL) Time() Time       { return h.t }

// hostLogger keeps stdout free for the serial command line.
type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b[:len(b):len(b)], '\n'))
}

// hostLED has no hardware; the window title shows its state.
type hostLED struct {
	on atomic.Bool
}

func (l *hostLED) High() { l.on.Store(true) }
func (l *hostLED) Low()  { l.on.Store(false) }

type hostSerial struct {
	mu sync.Mutex
	r  *os.File
	w  *os.File
}

func (s *hostSerial) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *hostSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
