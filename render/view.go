package render

import (
	"log/slog"

	"fixbrot/fixed"
	"fixbrot/fractal"
)

// Scroll moves the view by (dx, dy) pixels. Pixels still on screen are kept
// and only the exposed strips are evaluated. Deltas are clamped to the canvas
// and to the plane's [-2, 2] region.
func (r *Renderer) Scroll(dx, dy int) error {
	if r.Busy() {
		return ErrBusy
	}
	if r.vertFlip {
		dy = -dy
	}
	dx = min(max(dx, -(r.w-2)), r.w-2)
	dy = min(max(dy, -(r.h-2)), r.h-2)

	limit := fixed.FromInt64(2)
	if (r.scene.Real < -limit && dx < 0) || (r.scene.Real > limit && dx > 0) {
		dx = 0
	}
	if (r.scene.Imag < -limit && dy < 0) || (r.scene.Imag > limit && dy > 0) {
		dy = 0
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	r.scene.Real += r.scene.Step.MulInt(dx)
	r.scene.Imag += r.scene.Step.MulInt(dy)

	dest := rect{w: r.w - abs(dx), h: r.h - abs(dy)}
	if dx < 0 {
		dest.x = -dx
	}
	if dy < 0 {
		dest.y = -dy
	}
	srcX, dstX := 0, dest.x
	if dx > 0 {
		srcX = dx
	}
	if dy >= 0 {
		for i := 0; i < dest.h; i++ {
			r.pix.moveRow(dstX, i, srcX, i+dy, dest.w)
		}
	} else {
		for i := dest.h - 1; i >= 0; i-- {
			r.pix.moveRow(dstX, i-dy, srcX, i, dest.w)
		}
	}

	switch {
	case dx > 0:
		r.pix.fill(rect{dest.right(), 0, dx, r.h}, codeBlank)
	case dx < 0:
		r.pix.fill(rect{0, 0, -dx, r.h}, codeBlank)
	}
	switch {
	case dy > 0:
		r.pix.fill(rect{dest.x, dest.bottom(), dest.w, dy}, codeBlank)
	case dy < 0:
		r.pix.fill(rect{dest.x, 0, dest.w, -dy}, codeBlank)
	}

	if err := r.startRender(); err != nil {
		return err
	}
	if dx != 0 {
		x0, x1 := dest.x, dest.x-1
		if dx > 0 {
			x0, x1 = dest.right()-1, dest.right()
		}
		r.scanVert(x0, x1, dest.y, dest.h)
	}
	if dy != 0 {
		y0, y1 := dest.y, dest.y-1
		if dy > 0 {
			y0, y1 = dest.bottom()-1, dest.bottom()
		}
		r.scanHori(dest.x, y0, y1, dest.w)
	}
	r.feed()
	return r.overflow()
}

// ZoomIn halves the step around the view center. Within one precision the
// center half of the canvas is upscaled in place so every second pixel is
// kept; crossing into 64-bit precision discards the buffer.
func (r *Renderer) ZoomIn() error {
	if r.Busy() {
		return ErrBusy
	}
	if r.scaleExp >= r.MaxScaleExp() {
		return nil
	}
	was32 := r.Fixed32()
	r.scaleExp++
	r.updateStep()
	if r.Fixed32() != was32 {
		r.pix.clear()
	} else {
		r.upscale()
	}
	if err := r.startRender(); err != nil {
		return err
	}
	r.startTween(true)
	r.repaint = true
	r.logView("zoom in")
	r.feed()
	return r.overflow()
}

// ZoomOut doubles the step around the view center. The whole canvas is
// downscaled into its center half and only the new outer ring is traced.
func (r *Renderer) ZoomOut() error {
	if r.Busy() {
		return ErrBusy
	}
	if r.scaleExp <= MinScaleExp {
		return nil
	}
	was32 := r.Fixed32()
	r.scaleExp--
	r.updateStep()
	if r.Fixed32() != was32 {
		r.pix.clear()
		if err := r.startRender(); err != nil {
			return err
		}
	} else {
		r.downscale()
		if err := r.startRender(); err != nil {
			return err
		}
		in := rect{r.w / 4, r.h / 4, r.w / 2, r.h / 2}
		r.scanVert(in.x, in.x-1, in.y, in.h)
		r.scanVert(in.right()-1, in.right(), in.y, in.h)
		r.scanHori(in.x, in.y, in.y-1, in.w)
		r.scanHori(in.x, in.bottom()-1, in.bottom(), in.w)
	}
	r.startTween(false)
	r.repaint = true
	r.logView("zoom out")
	r.feed()
	return r.overflow()
}

// upscale doubles the center half of the canvas in place. Rows and columns
// are walked outward from the center so no source is overwritten before it
// is read. Only pixels landing on even offsets keep their value.
func (r *Renderer) upscale() {
	for i := 0; i < r.h; i++ {
		dy := i
		if i >= r.h/2 {
			dy = r.h*3/2 - 1 - i
		}
		sy := r.h/4 + dy/2
		for j := 0; j < r.w; j++ {
			dx := j
			if j >= r.w/2 {
				dx = r.w*3/2 - 1 - j
			}
			sx := r.w/4 + dx/2
			c := codeBlank
			if dx&1 == 0 && dy&1 == 0 {
				c = r.pix.at(sx, sy)
			}
			r.pix.put(dx, dy, c)
		}
	}
}

// downscale halves the canvas into its center in place, walking outward
// from the center.
func (r *Renderer) downscale() {
	for i := 0; i < r.h; i++ {
		dy := r.h/2 - 1 - i
		if i >= r.h/2 {
			dy = i
		}
		sy := dy*2 - r.h/2
		for j := 0; j < r.w; j++ {
			dx := r.w/2 - 1 - j
			if j >= r.w/2 {
				dx = j
			}
			sx := dx*2 - r.w/2
			c := codeBlank
			if sx >= 0 && sx < r.w && sy >= 0 && sy < r.h {
				c = r.pix.at(sx, sy)
			}
			r.pix.put(dx, dy, c)
		}
	}
}

// SetMaxIter changes the iteration cap, clamped to [fractal.MinIter,
// IterLimit]. Lowering it only recolors. Raising it resets every
// ReachedCap pixel and retraces from a sparse grid of rows and columns.
func (r *Renderer) SetMaxIter(n int) error {
	if r.Busy() {
		return ErrBusy
	}
	n = min(max(n, fractal.MinIter), r.IterLimit())
	if n == r.scene.MaxIter {
		return nil
	}
	raised := n > r.scene.MaxIter
	r.scene.MaxIter = n
	r.repaint = true
	r.logView("iteration cap")
	if !raised {
		return nil
	}

	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			if r.pix.at(x, y) == codeCap {
				r.pix.put(x, y, codeBlank)
			}
		}
	}
	if err := r.startRender(); err != nil {
		return err
	}
	for y := CoarseStep / 2; y < r.h-1; y += CoarseStep {
		y0, y1 := y, y+1
		if y >= r.h/2 {
			y0, y1 = y1, y0
		}
		r.scanHori(0, y0, y1, r.w)
	}
	for x := CoarseStep / 2; x < r.w-1; x += CoarseStep {
		x0, x1 := x, x+1
		if x >= r.w/2 {
			x0, x1 = x1, x0
		}
		r.scanVert(x0, x1, 0, r.h)
	}
	r.feed()
	return r.overflow()
}

// SetFormula switches the formula and re-renders from scratch.
func (r *Renderer) SetFormula(f fractal.Formula) error {
	if r.Busy() {
		return ErrBusy
	}
	if !f.Valid() {
		f = fractal.Mandelbrot
	}
	r.scene.Formula = f
	r.logView("formula")
	return r.restart()
}

// SetVertFlip flips the vertical axis of painting and scrolling. The canvas
// is re-rendered.
func (r *Renderer) SetVertFlip(flip bool) error {
	if r.Busy() {
		return ErrBusy
	}
	if flip == r.vertFlip {
		return nil
	}
	r.vertFlip = flip
	return r.restart()
}

func (r *Renderer) restart() error {
	r.pix.clear()
	err := r.startRender()
	r.repaint = true
	r.feed()
	return err
}

// SetPalette loads a palette at the current slope. Painting only; it never
// affects the buffer.
func (r *Renderer) SetPalette(kind PaletteKind) {
	r.pal.load(kind, r.pal.slope)
	r.repaint = true
}

// SetPaletteSlope reloads the palette with a gradient of MaxPaletteSize>>slope
// entries, clamped to [0, MaxPaletteSlope].
func (r *Renderer) SetPaletteSlope(slope int) {
	r.pal.load(r.pal.kind, slope)
	r.repaint = true
}

// SetPalettePhase rotates the palette. The phase wraps at MaxPaletteSize.
func (r *Renderer) SetPalettePhase(phase int) {
	phase %= MaxPaletteSize
	if phase < 0 {
		phase += MaxPaletteSize
	}
	r.pal.phase = phase
	r.repaint = true
}

func (r *Renderer) logView(what string) {
	Logger().Info("render: "+what,
		slog.String("re", r.scene.Real.String()),
		slog.String("im", r.scene.Imag.String()),
		slog.Int("scale", r.scaleExp),
		slog.Int("iter", r.scene.MaxIter),
		slog.String("formula", r.scene.Formula.String()))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
