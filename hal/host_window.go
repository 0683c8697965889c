//go:build !tinygo && cgo

package hal

import (
	"fixbrot/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 2

// RunWindow opens a desktop window showing the framebuffer and forwarding
// keyboard input. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	g := &hostGame{h: h, step: newApp(h)}
	ebiten.SetWindowTitle(windowTitle(false))
	ebiten.SetWindowSize(h.fb.w*windowScale, h.fb.h*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

// windowTitle marks the title while a render pass is running.
func windowTitle(busy bool) string {
	t := "Fixbrot (" + buildinfo.Short() + ")"
	if busy {
		t += " *"
	}
	return t
}

type hostGame struct {
	h    *hostHAL
	step func() error
	busy bool

	// Frame upload state; rebuilt only when a new frame was presented.
	shown   uint64
	rgba    []byte
	scratch []byte
	img     *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step()
	if busy := g.h.led.on.Load(); busy != g.busy {
		g.busy = busy
		ebiten.SetWindowTitle(windowTitle(busy))
	}
	if g.step == nil {
		return nil
	}
	return g.step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = ebiten.NewImage(fb.w, fb.h)
		g.rgba = make([]byte, fb.w*fb.h*4)
		g.scratch = make([]byte, len(fb.back))
	}
	if n := fb.presented(); n != g.shown {
		g.shown = n
		expandFrame(g.rgba, g.scratch, fb)
		g.img.WritePixels(g.rgba)
	}
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(int, int) (int, int) {
	return g.h.fb.w, g.h.fb.h
}
