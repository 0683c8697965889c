//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the run after that many frames; zero runs until ctx ends.
	Ticks uint64

	Width, Height int

	// Shot, when set, receives the last presented frame as PNG on exit.
	Shot string
}

// RunHeadless drives the system from a ticker instead of a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height)
	step := newApp(h)
	err := headlessLoop(ctx, h, step, d, cfg.Ticks)
	h.logger.WriteLineString(fmt.Sprintf("headless: %d frames presented", h.fb.presented()))
	if cfg.Shot != "" {
		if serr := writeShot(cfg.Shot, h.fb); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func headlessLoop(ctx context.Context, h *hostHAL, step func() error, d time.Duration, limit uint64) error {
	t := time.NewTicker(d)
	defer t.Stop()
	for n := uint64(1); ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		h.t.step()
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		if limit > 0 && n >= limit {
			return nil
		}
	}
}

func writeShot(path string, fb *memFramebuffer) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.w, fb.h))
	expandFrame(img.Pix, make([]byte, len(fb.back)), fb)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("headless shot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("headless shot: %w", err)
	}
	return f.Close()
}

// expandFrame copies the last presented frame into scratch and expands it
// into 8-bit RGBA in dst.
func expandFrame(dst, scratch []byte, fb *memFramebuffer) {
	fb.snapshot(scratch)
	src := scratch
	for i := 0; i+1 < len(src) && 2*i+3 < len(dst); i += 2 {
		r, g, b := RGB888(uint16(src[i]) | uint16(src[i+1])<<8)
		j := 2 * i
		dst[j], dst[j+1], dst[j+2], dst[j+3] = r, g, b, 0xFF
	}
}
