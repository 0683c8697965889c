package render

import "fixbrot/fixed"

// tween is the zoom animation. Painting is scaled around the canvas center
// from the previous view toward identity.
type tween struct {
	active bool
	in     bool
	end    uint64
}

func (r *Renderer) startTween(in bool) {
	now := r.host.NowMillis()
	r.zoom = tween{active: true, in: in, end: now + ZoomDurationMs}
	r.updateTween(now)
}

func (r *Renderer) updateTween(now uint64) {
	if !r.zoom.active {
		return
	}
	var t int64
	if r.zoom.end > now {
		t = int64(r.zoom.end - now)
	} else {
		r.zoom.active = false
	}
	if r.zoom.in {
		r.setPaintScale(fixed.One32 + fixed.Fixed32(int64(fixed.One32)*t/ZoomDurationMs))
	} else {
		r.setPaintScale(fixed.One32 - fixed.Fixed32(int64(fixed.One32)*t/(2*ZoomDurationMs)))
	}
	r.repaint = true
}

func (r *Renderer) setPaintScale(s fixed.Fixed32) { r.paintScale = s }

// PaintScale is the current tween scale; One32 when idle.
func (r *Renderer) PaintScale() fixed.Fixed32 { return r.paintScale }

func (r *Renderer) scaleCoord(v, size int) int {
	if r.paintScale == fixed.One32 {
		return v
	}
	half := size / 2
	return int(int64(v-half)*int64(r.paintScale)>>fixed.Frac32) + half
}

// PaintStart prepares a frame. Call it before the PaintLine calls of a frame.
func (r *Renderer) PaintStart() {
	for x := range r.paintX {
		r.paintX[x] = r.scaleCoord(x, r.w)
	}
}

// PaintLine renders len(out) RGB565 pixels of screen row y starting at
// column x. Pixels still in flight show the nearest known ancestor, dimmed.
func (r *Renderer) PaintLine(x, y int, out []uint16) {
	if r.vertFlip {
		y = r.h - 1 - y
	}
	rowOK := y >= 0 && y < r.h
	sy := r.scaleCoord(y, r.h)
	for i := range out {
		px := x + i
		if !rowOK || px < 0 || px >= r.w {
			out[i] = colorBlank
			continue
		}
		out[i] = r.colorAt(r.paintX[px], sy)
	}
}

// PaintFinished clears the repaint request.
func (r *Renderer) PaintFinished() { r.repaint = false }

func (r *Renderer) colorAt(sx, sy int) uint16 {
	if !r.inside(sx, sy) {
		return colorBlank
	}
	c := r.pix.at(sx, sy)
	final := true
	if c == codeBlank || c == codeQueued {
		final = false
		c = r.pix.at(sx&^1, sy&^1)
		if c == codeBlank || c == codeQueued {
			cx := min(sx&^(CoarseStep-1)+CoarseStep/2, r.w-1)
			cy := min(sy&^(CoarseStep-1)+CoarseStep/2, r.h-1)
			c = r.pix.at(cx, cy)
		}
	}
	switch {
	case c == codeBlank || c == codeQueued:
		return colorBlank
	case c.finished():
		col := r.pal.color(c, r.scene.MaxIter)
		if !final {
			col = col >> 1 & dimMask
		}
		return col
	}
	return colorSentinel
}
