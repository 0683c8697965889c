package hal

import (
	"sync"
	"sync/atomic"
)

// Canvas size used by targets that do not fix their own.
const (
	defaultWidth  = 320
	defaultHeight = 320
)

// memFramebuffer is an RGB565 buffer in RAM. When double is set, Present
// copies the back buffer into a front buffer that readers snapshot, so a
// reader never sees a half-painted frame.
type memFramebuffer struct {
	w, h  int
	back  []byte
	front []byte

	mu       sync.Mutex
	presents atomic.Uint64
}

func newMemFramebuffer(w, h int, double bool) *memFramebuffer {
	f := &memFramebuffer{w: w, h: h, back: make([]byte, w*h*2)}
	if double {
		f.front = make([]byte, len(f.back))
	}
	return f
}

func (f *memFramebuffer) Width() int             { return f.w }
func (f *memFramebuffer) Height() int            { return f.h }
func (f *memFramebuffer) Format() PixelFormat    { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int       { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte         { return f.back }
func (f *memFramebuffer) ClearRGB(r, g, b uint8) { fillRGB565(f.back, RGB565(r, g, b)) }

func (f *memFramebuffer) Present() error {
	if f.front != nil {
		f.mu.Lock()
		copy(f.front, f.back)
		f.mu.Unlock()
	}
	f.presents.Add(1)
	return nil
}

// snapshot copies the last presented frame into dst.
func (f *memFramebuffer) snapshot(dst []byte) {
	if f.front == nil {
		copy(dst, f.back)
		return
	}
	f.mu.Lock()
	copy(dst, f.front)
	f.mu.Unlock()
}

func (f *memFramebuffer) presented() uint64 { return f.presents.Load() }

type memDisplay struct{ fb Framebuffer }

func (d memDisplay) Framebuffer() Framebuffer { return d.fb }

type keyboardInput struct{ kbd Keyboard }

func (in keyboardInput) Keyboard() Keyboard { return in.kbd }

// noKeyboard never delivers events.
type noKeyboard struct{}

func (noKeyboard) Events() <-chan KeyEvent { return nil }
