package render

import (
	"testing"

	"fixbrot/fixed"
	"fixbrot/fractal"
)

func TestPixelsRoundTrip(t *testing.T) {
	for _, packed := range []bool{false, true} {
		for _, w := range []int{2, 7, 16} {
			p := newPixels(w, 3, packed)
			codes := []code{codeBlank, 1, 2, 0x0FF, 0xABC, 4092, codeCap, codeQueued, codeWall}
			for i, c := range codes {
				x, y := i%w, i/w%3
				p.put(x, y, c)
				if got := p.at(x, y); got != c {
					t.Fatalf("packed=%v w=%d (%d,%d): expected %d, got %d", packed, w, x, y, c, got)
				}
			}
		}
	}
}

func TestPackedNeighborsIndependent(t *testing.T) {
	p := newPixels(4, 1, true)
	p.put(0, 0, 0xABC)
	p.put(1, 0, 0x123)
	p.put(2, 0, codeQueued)
	p.put(3, 0, 7)
	want := []code{0xABC, 0x123, codeQueued, 7}
	for x, c := range want {
		if got := p.at(x, 0); got != c {
			t.Fatalf("x=%d: expected %d, got %d", x, c, got)
		}
	}
}

func TestPackedClampsLargeCounts(t *testing.T) {
	p := newPixels(2, 1, true)
	p.put(1, 0, 5000)
	if got := p.at(1, 0); got != codeCap {
		t.Fatalf("expected cap, got %d", got)
	}
}

func TestMoveRowOverlap(t *testing.T) {
	for _, packed := range []bool{false, true} {
		p := newPixels(8, 1, packed)
		for x := 0; x < 8; x++ {
			p.put(x, 0, code(x+1))
		}
		p.moveRow(2, 0, 0, 0, 6)
		want := []code{1, 2, 1, 2, 3, 4, 5, 6}
		for x, c := range want {
			if got := p.at(x, 0); got != c {
				t.Fatalf("packed=%v x=%d: expected %d, got %d", packed, x, c, got)
			}
		}
	}
}

func TestPixelStateCodes(t *testing.T) {
	states := []PixelState{{Kind: Blank}, {Kind: Queued}, {Kind: Finished, Iter: 42}, {Kind: ReachedCap}, {Kind: Wall}}
	for _, s := range states {
		if got := codeOf(s).state(); got != s {
			t.Fatalf("expected %s, got %s", s, got)
		}
	}
	if got := codeOf(PixelState{Kind: Finished}).state(); got != (PixelState{Kind: Finished, Iter: 1}) {
		t.Fatalf("expected Finished(1), got %s", got)
	}
}

func TestPaletteSizes(t *testing.T) {
	var p palette
	for slope := 0; slope <= MaxPaletteSlope; slope++ {
		for k := PaletteKind(0); k < NumPalettes; k++ {
			p.load(k, slope)
			want := MaxPaletteSize >> slope
			if k == Stripe {
				want = 64 >> slope
			}
			if p.size != want {
				t.Fatalf("%s slope %d: expected size %d, got %d", k, slope, want, p.size)
			}
		}
	}
	p.load(Heatmap, 99)
	if p.slope != MaxPaletteSlope {
		t.Fatalf("expected slope clamp, got %d", p.slope)
	}
}

func TestPaletteColors(t *testing.T) {
	var p palette
	p.load(Gray, 0)
	if p.table[0] != 0 {
		t.Fatalf("expected black, got %#04x", p.table[0])
	}
	if p.table[255] != 0xFFFF {
		t.Fatalf("expected white, got %#04x", p.table[255])
	}
	p.load(Stripe, 0)
	if p.table[0] != Pack565(224, 224, 224) || p.table[63] != Pack565(32, 32, 32) {
		t.Fatal("unexpected stripe colors")
	}
	if Pack565(255, 255, 255) != 0xFFFF || Pack565(255, 0, 0) != 0xF800 {
		t.Fatal("unexpected Pack565")
	}
}

func TestParsePalette(t *testing.T) {
	for k := PaletteKind(0); k < NumPalettes; k++ {
		got, err := ParsePalette(k.String())
		if err != nil || got != k {
			t.Fatalf("ParsePalette(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePalette("plaid"); err == nil {
		t.Fatal("expected error for unknown palette")
	}
	if Stripe.Next() != Heatmap {
		t.Fatal("expected palette cycle to wrap")
	}
}

func TestPalettePhaseWraps(t *testing.T) {
	r, _ := newTestRenderer(t, 16, 16, bands, nil)
	r.SetPalettePhase(MaxPaletteSize + 5)
	if r.PalettePhase() != 5 {
		t.Fatalf("expected phase 5, got %d", r.PalettePhase())
	}
	r.SetPalettePhase(-1)
	if r.PalettePhase() != MaxPaletteSize-1 {
		t.Fatalf("expected phase %d, got %d", MaxPaletteSize-1, r.PalettePhase())
	}
}

func TestPaintLineFinished(t *testing.T) {
	r, _ := newTestRenderer(t, 32, 32, bands, nil)
	drain(t, r)
	r.PaintStart()
	out := make([]uint16, 32)
	r.PaintLine(0, 5, out)
	for x := range out {
		p := r.Pixel(x, 5)
		want := r.pal.table[(int(p.Iter)+r.PalettePhase())&(r.PaletteSize()-1)]
		if out[x] != want {
			t.Fatalf("x=%d: expected %#04x, got %#04x", x, want, out[x])
		}
	}
	r.PaintFinished()
	if r.RepaintRequested() {
		t.Fatal("expected repaint request cleared")
	}
}

func TestPaintLineClipsAndFlips(t *testing.T) {
	r, _ := newTestRenderer(t, 16, 16, bands, nil)
	drain(t, r)
	r.PaintStart()
	top := make([]uint16, 16)
	r.PaintLine(0, 0, top)

	if err := r.SetVertFlip(true); err != nil {
		t.Fatalf("SetVertFlip: %v", err)
	}
	drain(t, r)
	r.PaintStart()
	bottom := make([]uint16, 16)
	r.PaintLine(0, 15, bottom)
	for x := range top {
		if top[x] != bottom[x] {
			t.Fatalf("x=%d: expected flipped row %#04x, got %#04x", x, top[x], bottom[x])
		}
	}

	out := []uint16{1, 1, 1, 1}
	r.PaintLine(14, 3, out)
	if out[2] != 0 || out[3] != 0 {
		t.Fatal("expected black past the right edge")
	}
	out = []uint16{1, 1}
	r.PaintLine(0, 16, out)
	if out[0] != 0 || out[1] != 0 {
		t.Fatal("expected black below the canvas")
	}
}

func TestPaintInSetAndCap(t *testing.T) {
	r, _ := newTestRenderer(t, 16, 16, bands, nil)
	drain(t, r)
	r.pix.put(3, 3, codeCap)
	r.pix.put(4, 3, code(r.MaxIter()))
	r.PaintStart()
	out := make([]uint16, 16)
	r.PaintLine(0, 3, out)
	if out[3] != colorInSet || out[4] != colorInSet {
		t.Fatalf("expected in-set color, got %#04x %#04x", out[3], out[4])
	}
}

func TestPaintPreviewIsDimmed(t *testing.T) {
	r, _ := newTestRenderer(t, 32, 32, bands, nil)
	drain(t, r)
	r.pix.clear()
	r.pix.put(8, 8, 3)
	r.pix.put(4, 6, 5)
	r.PaintStart()
	out := make([]uint16, 32)

	r.PaintLine(0, 9, out)
	if want := r.pal.color(3, r.MaxIter()) >> 1 & dimMask; out[1] != want {
		t.Fatalf("expected coarse ancestor %#04x, got %#04x", want, out[1])
	}
	r.PaintLine(0, 7, out)
	if want := r.pal.color(5, r.MaxIter()) >> 1 & dimMask; out[5] != want {
		t.Fatalf("expected 2x2 ancestor %#04x, got %#04x", want, out[5])
	}
	r.PaintLine(0, 20, out)
	if out[20] != colorBlank {
		t.Fatalf("expected blank, got %#04x", out[20])
	}
}

func TestZoomTween(t *testing.T) {
	r, host := newTestRenderer(t, 32, 32, bands, nil)
	drain(t, r)
	host.now = 1000
	if err := r.ZoomIn(); err != nil {
		t.Fatalf("ZoomIn: %v", err)
	}
	if r.PaintScale() != 2*fixed.One32 {
		t.Fatalf("expected scale 2, got %s", r.PaintScale())
	}
	host.now = 1100
	_ = r.Service()
	if !r.Animating() {
		t.Fatal("expected animation in progress")
	}
	if r.PaintScale() != fixed.One32+fixed.One32/2 {
		t.Fatalf("expected scale 1.5, got %s", r.PaintScale())
	}
	host.now = 1300
	_ = r.Service()
	if r.Animating() || r.PaintScale() != fixed.One32 {
		t.Fatalf("expected tween to end, scale %s", r.PaintScale())
	}
	drain(t, r)

	host.now = 2000
	if err := r.ZoomOut(); err != nil {
		t.Fatalf("ZoomOut: %v", err)
	}
	if r.PaintScale() != fixed.One32/2 {
		t.Fatalf("expected scale 0.5, got %s", r.PaintScale())
	}
	drain(t, r)
}

func TestPaintScaleMapsAroundCenter(t *testing.T) {
	r, _ := newTestRenderer(t, 32, 32, fractal.Formulas, nil)
	r.setPaintScale(2 * fixed.One32)
	r.PaintStart()
	if r.paintX[16] != 16 || r.paintX[17] != 18 || r.paintX[8] != 0 {
		t.Fatalf("unexpected mapping %v", r.paintX[:20])
	}
}
