//go:build !tinygo

package hal

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHostTimeCatchesUp(t *testing.T) {
	ht := newHostTime()
	ht.start = time.Now().Add(-20 * time.Millisecond)
	ht.step()
	if ht.seq < 20 {
		t.Fatalf("expected at least 20 ticks, got %d", ht.seq)
	}
	var last uint64
	for len(ht.ch) > 0 {
		seq := <-ht.ch
		if seq != last+1 {
			t.Fatalf("expected tick %d, got %d", last+1, seq)
		}
		last = seq
	}
	if last != ht.seq {
		t.Fatalf("expected last tick %d, got %d", ht.seq, last)
	}
}

func TestHostTimeBoundsBacklog(t *testing.T) {
	ht := newHostTime()
	ht.start = time.Now().Add(-10 * time.Second)
	ht.step()
	if n := len(ht.ch); n != tickBacklog {
		t.Fatalf("expected %d queued ticks, got %d", tickBacklog, n)
	}
	if first := <-ht.ch; first <= 1 {
		t.Fatalf("expected the oldest ticks to be skipped, first = %d", first)
	}
}

func TestRunHeadlessShot(t *testing.T) {
	shot := filepath.Join(t.TempDir(), "out.png")
	newApp := func(h HAL) func() error {
		fb := h.Display().Framebuffer()
		return func() error {
			fb.ClearRGB(0xFF, 0, 0)
			return fb.Present()
		}
	}
	cfg := HeadlessConfig{Enabled: true, Hz: 1000, Ticks: 3, Width: 8, Height: 4, Shot: shot}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	f, err := os.Open(shot)
	if err != nil {
		t.Fatalf("open shot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode shot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("expected 8x4 shot, got %v", b)
	}
	if r, g, b, _ := img.At(7, 3).RGBA(); r>>8 != 0xFF || g != 0 || b != 0 {
		t.Fatalf("expected red, got %d %d %d", r>>8, g>>8, b>>8)
	}
}
