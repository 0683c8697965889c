package render

import (
	"fmt"
	"strings"
)

// PaletteKind selects a palette generator.
type PaletteKind uint8

const (
	Heatmap PaletteKind = iota
	Rainbow
	Gray
	Stripe
	NumPalettes
)

var paletteNames = [NumPalettes]string{"Heatmap", "Rainbow", "Gray", "Stripe"}

func (k PaletteKind) String() string {
	if k < NumPalettes {
		return paletteNames[k]
	}
	return "(Unknown)"
}

// Next cycles to the following palette.
func (k PaletteKind) Next() PaletteKind { return (k + 1) % NumPalettes }

// ParsePalette looks a palette up by case-insensitive name.
func ParsePalette(name string) (PaletteKind, error) {
	for i, n := range paletteNames {
		if strings.EqualFold(n, name) {
			return PaletteKind(i), nil
		}
	}
	return 0, fmt.Errorf("render: unknown palette %q", name)
}

// Pack565 packs an 8-bit-per-channel color into RGB565.
func Pack565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// palette is the loaded color table. size is always a power of two.
type palette struct {
	kind  PaletteKind
	slope int
	size  int
	phase int
	inSet uint16
	table [MaxPaletteSize]uint16
}

func (p *palette) load(kind PaletteKind, slope int) {
	if slope < 0 {
		slope = 0
	}
	if slope > MaxPaletteSlope {
		slope = MaxPaletteSlope
	}
	if kind >= NumPalettes {
		kind = Heatmap
	}
	p.kind, p.slope = kind, slope
	p.inSet = colorInSet
	switch kind {
	case Rainbow:
		p.rainbow()
	case Gray:
		p.gray()
	case Stripe:
		p.stripe()
	default:
		p.heatmap()
	}
}

func (p *palette) heatmap() {
	p.size = MaxPaletteSize >> p.slope
	for i := 0; i < p.size; i++ {
		v := i * 256 * 6 / p.size
		f := v % 256
		var c uint16
		switch v / 256 {
		case 0:
			c = Pack565(0, uint8(f/4), uint8(f))
		case 1:
			c = Pack565(0, uint8(64+f/2), 255)
		case 2:
			c = Pack565(uint8(f), uint8(192+f/4), 255)
		case 3:
			c = Pack565(255, uint8(255-f/4), uint8(255-f))
		case 4:
			c = Pack565(255, uint8(191-f/2), 0)
		default:
			c = Pack565(uint8(255-f), uint8(63-f/4), 0)
		}
		p.table[i] = c
	}
}

func (p *palette) rainbow() {
	p.size = MaxPaletteSize >> p.slope
	for i := 0; i < p.size; i++ {
		v := i * 256 * 6 / p.size
		f := uint8(v % 256)
		var c uint16
		switch v / 256 {
		case 0:
			c = Pack565(255, f, 0)
		case 1:
			c = Pack565(255-f, 255, 0)
		case 2:
			c = Pack565(0, 255, f)
		case 3:
			c = Pack565(0, 255-f, 255)
		case 4:
			c = Pack565(f, 0, 255)
		default:
			c = Pack565(255, 0, 255-f)
		}
		p.table[i] = c
	}
}

func (p *palette) gray() {
	p.size = MaxPaletteSize >> p.slope
	for i := 0; i < p.size; i++ {
		g := i * 512 / p.size
		if g >= 256 {
			g = 511 - g
		}
		p.table[i] = Pack565(uint8(g), uint8(g), uint8(g))
	}
}

func (p *palette) stripe() {
	p.size = 64 >> p.slope
	for i := 0; i < p.size; i++ {
		if i < p.size/2 {
			p.table[i] = Pack565(224, 224, 224)
		} else {
			p.table[i] = Pack565(32, 32, 32)
		}
	}
}

// color maps a finished code to a palette color.
func (p *palette) color(c code, maxIter int) uint16 {
	if int(c) >= maxIter {
		return p.inSet
	}
	return p.table[(int(c)+p.phase)&(p.size-1)]
}
