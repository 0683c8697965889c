package explorer

import (
	"image/color"

	"fixbrot/hal"

	"tinygo.org/x/drivers"
)

// surface is an off-screen RGB565 strip that tinyfont and tinyterm draw into.
// It is blitted over the fractal after every repaint.
type surface struct {
	w, h int
	pix  []uint16
}

func newSurface(w, h int) *surface {
	return &surface{w: w, h: h, pix: make([]uint16, w*h)}
}

func (s *surface) Size() (x, y int16) { return int16(s.w), int16(s.h) }

func (s *surface) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= s.w || iy < 0 || iy >= s.h {
		return
	}
	s.pix[iy*s.w+ix] = hal.RGB565(c.R, c.G, c.B)
}

func (s *surface) Display() error { return nil }

func (s *surface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, s.w)
	y0 := clampInt(int(y), 0, s.h)
	x1 := clampInt(int(x)+int(width), 0, s.w)
	y1 := clampInt(int(y)+int(height), 0, s.h)
	pixel := hal.RGB565(c.R, c.G, c.B)
	for py := y0; py < y1; py++ {
		row := s.pix[py*s.w : (py+1)*s.w]
		for px := x0; px < x1; px++ {
			row[px] = pixel
		}
	}
	return nil
}

// ScrollUp is picked up by tinyterm for software scrolling.
func (s *surface) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= s.h {
		return s.FillRectangle(0, 0, int16(s.w), int16(s.h), bg)
	}
	copy(s.pix, s.pix[n*s.w:])
	return s.FillRectangle(0, int16(s.h-n), int16(s.w), int16(n), bg)
}

func (s *surface) SetScroll(line int16) {}

func (s *surface) SetRotation(rotation drivers.Rotation) error { return nil }

func (s *surface) clear() {
	clear(s.pix)
}

// blit copies the surface into fb with its top-left corner at row y0.
func (s *surface) blit(fb hal.Framebuffer, y0 int) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	w := min(s.w, fb.Width())
	for y := 0; y < s.h; y++ {
		fy := y0 + y
		if fy < 0 || fy >= fb.Height() {
			continue
		}
		hal.PutRGB565Row(buf[fy*stride:], s.pix[y*s.w:y*s.w+w])
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
