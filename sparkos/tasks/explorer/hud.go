package explorer

import (
	"fmt"
	"image/color"

	"fixbrot/render"
	"fixbrot/sparkos/fonts"

	"tinygo.org/x/tinyfont"
)

const (
	// Wide enough for "-1.23456789012345" at the deepest zoom.
	coordBuf    = 20
	coordDigits = 15
)

var (
	hudFG   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	hudBusy = color.RGBA{R: 0xFF, G: 0xC0, B: 0x00, A: 0xFF}
	hudBG   = color.RGBA{A: 0xFF}
)

// hud is the two-line status strip at the top of the screen.
type hud struct {
	s     *surface
	lines [2]string
	busy  bool
}

func newHUD(width int) *hud {
	return &hud{s: newSurface(width, 2*fonts.LineHeight+1)}
}

func hudLines(r *render.Renderer) [2]string {
	prec := "64"
	if r.Fixed32() {
		prec = "32"
	}
	return [2]string{
		fmt.Sprintf("%s  2^%d  it %d  q%s", r.Formula(), r.ScaleExp(), r.MaxIter(), prec),
		r.CenterRe().DecimalString(coordBuf, coordDigits) + " " + r.CenterIm().DecimalString(coordBuf, coordDigits) + "i",
	}
}

// update redraws the strip and reports whether it changed.
func (h *hud) update(r *render.Renderer) bool {
	lines := hudLines(r)
	busy := r.Busy()
	if lines == h.lines && busy == h.busy {
		return false
	}
	h.lines, h.busy = lines, busy
	h.s.clear()
	for i, line := range lines {
		tinyfont.WriteLine(h.s, fonts.System, 1, int16(i*fonts.LineHeight+fonts.Baseline+1), line, hudFG)
	}
	if busy {
		_ = h.s.FillRectangle(int16(h.s.w-5), 2, 4, 4, hudBusy)
	}
	return true
}
