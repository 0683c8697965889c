package render

import "fmt"

// Kind classifies a pixel.
type Kind uint8

const (
	// Blank has not been evaluated or queued.
	Blank Kind = iota
	// Queued is waiting for evaluation.
	Queued
	// Finished holds an escape count below the iteration cap.
	Finished
	// ReachedCap hit the iteration cap.
	ReachedCap
	// Wall is the virtual neighbor outside the canvas. It is never stored.
	Wall
)

var kindNames = [...]string{"Blank", "Queued", "Finished", "ReachedCap", "Wall"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// PixelState is the state of one pixel. Iter is meaningful for Finished only.
type PixelState struct {
	Kind Kind
	Iter uint16
}

// Done reports whether the pixel carries a final value.
func (p PixelState) Done() bool { return p.Kind == Finished || p.Kind == ReachedCap }

func (p PixelState) String() string {
	if p.Kind == Finished {
		return fmt.Sprintf("Finished(%d)", p.Iter)
	}
	return p.Kind.String()
}

// code is the in-buffer encoding of a PixelState. 0 is Blank, values up to
// codeCap are iteration counts, codeCap itself is ReachedCap.
type code uint16

const (
	codeBlank  code = 0
	codeCap    code = 1<<16 - 3
	codeQueued code = 1<<16 - 2
	codeWall   code = 1<<16 - 1
)

func (c code) finished() bool { return c != codeBlank && c <= codeCap }

func (c code) state() PixelState {
	switch {
	case c == codeBlank:
		return PixelState{Kind: Blank}
	case c == codeQueued:
		return PixelState{Kind: Queued}
	case c == codeWall:
		return PixelState{Kind: Wall}
	case c == codeCap:
		return PixelState{Kind: ReachedCap}
	}
	return PixelState{Kind: Finished, Iter: uint16(c)}
}

func codeOf(p PixelState) code {
	switch p.Kind {
	case Queued:
		return codeQueued
	case Wall:
		return codeWall
	case ReachedCap:
		return codeCap
	case Finished:
		if p.Iter == 0 {
			return 1
		}
		if code(p.Iter) >= codeCap {
			return codeCap
		}
		return code(p.Iter)
	}
	return codeBlank
}

// pixels is the canvas buffer. It stores one 16-bit code per pixel, or packs
// two pixels into three bytes when packed is set. Packed codes keep 12 bits;
// the three top 12-bit values alias codeCap, codeQueued and codeWall.
type pixels struct {
	w, h   int
	packed bool
	stride int
	wide   []uint16
	narrow []byte
}

func newPixels(w, h int, packed bool) pixels {
	p := pixels{w: w, h: h, packed: packed}
	if packed {
		p.stride = (w*3 + 1) / 2
		p.narrow = make([]byte, p.stride*h)
	} else {
		p.stride = w
		p.wide = make([]uint16, w*h)
	}
	return p
}

func (p *pixels) at(x, y int) code {
	if !p.packed {
		return code(p.wide[y*p.w+x])
	}
	i := y*p.stride + x*3/2
	var v uint16
	if x&1 == 0 {
		v = uint16(p.narrow[i]) | uint16(p.narrow[i+1]&0x0F)<<8
	} else {
		v = uint16(p.narrow[i]>>4) | uint16(p.narrow[i+1])<<4
	}
	if v >= 1<<12-3 {
		return code(v) | 0xF000
	}
	return code(v)
}

func (p *pixels) put(x, y int, c code) {
	if !p.packed {
		p.wide[y*p.w+x] = uint16(c)
		return
	}
	v := uint16(c) & 0x0FFF
	if c < codeCap && c >= 1<<12-3 {
		// A count past the packed range reads back as the cap.
		v = 1<<12 - 3
	}
	i := y*p.stride + x*3/2
	if x&1 == 0 {
		p.narrow[i] = byte(v)
		p.narrow[i+1] = p.narrow[i+1]&0xF0 | byte(v>>8)
	} else {
		p.narrow[i] = p.narrow[i]&0x0F | byte(v<<4)
		p.narrow[i+1] = byte(v >> 4)
	}
}

// fill sets every pixel of r to c.
func (p *pixels) fill(r rect, c code) {
	for y := r.y; y < r.bottom(); y++ {
		if !p.packed {
			row := p.wide[y*p.w+r.x : y*p.w+r.right()]
			for i := range row {
				row[i] = uint16(c)
			}
			continue
		}
		for x := r.x; x < r.right(); x++ {
			p.put(x, y, c)
		}
	}
}

func (p *pixels) clear() {
	if p.packed {
		clear(p.narrow)
		return
	}
	clear(p.wide)
}

// moveRow copies n pixels from (sx, sy) to (dx, dy). Overlapping spans on
// the same row are handled.
func (p *pixels) moveRow(dx, dy, sx, sy, n int) {
	if n <= 0 {
		return
	}
	if !p.packed {
		copy(p.wide[dy*p.w+dx:dy*p.w+dx+n], p.wide[sy*p.w+sx:sy*p.w+sx+n])
		return
	}
	if dy == sy && dx > sx {
		for i := n - 1; i >= 0; i-- {
			p.put(dx+i, dy, p.at(sx+i, sy))
		}
		return
	}
	for i := 0; i < n; i++ {
		p.put(dx+i, dy, p.at(sx+i, sy))
	}
}

type rect struct{ x, y, w, h int }

func (r rect) right() int  { return r.x + r.w }
func (r rect) bottom() int { return r.y + r.h }
