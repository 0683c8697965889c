package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"fixbrot/fractal"
	"fixbrot/internal/script"
	"fixbrot/render"
	"fixbrot/worker"
)

type options struct {
	width, height int
	scale         int
	workers       int
	cfg           render.Config
	script        []script.Command
}

// snapshot renders the initial view, applies the script one command at a
// time and returns the final frame.
func snapshot(ctx context.Context, o options) (*image.RGBA, render.Stats, error) {
	n := max(o.workers, 1)
	pool := worker.NewPool(n, fractal.Formulas)
	host := worker.NewHost(pool)

	// Skipping the clock ahead after each command ends the zoom tween
	// without waiting for it.
	wall := host.Now
	var skew uint64
	host.Now = func() uint64 { return wall() + skew }

	o.cfg.Width, o.cfg.Height = o.width, o.height
	r, err := render.New(o.cfg, host)
	if err != nil {
		return nil, render.Stats{}, err
	}

	if o.workers > 0 {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() { _ = pool.Run(ctx) }()
	}

	drain := func() error {
		for r.Busy() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if o.workers == 0 {
				pool.Service(render.BatchSize)
			} else {
				runtime.Gosched()
			}
			if err := r.Service(); err != nil {
				return err
			}
		}
		skew += render.ZoomDurationMs
		return r.Service()
	}

	if err := r.Init(); err != nil {
		return nil, r.Stats(), err
	}
	if err := drain(); err != nil {
		return nil, r.Stats(), err
	}
	for _, c := range o.script {
		if err := c.Apply(r); err != nil {
			return nil, r.Stats(), fmt.Errorf("%s: %w", c, err)
		}
		if err := drain(); err != nil {
			return nil, r.Stats(), fmt.Errorf("%s: %w", c, err)
		}
	}

	img := frame(r)
	if o.scale > 1 {
		b := img.Bounds()
		big := image.NewRGBA(image.Rect(0, 0, b.Dx()*o.scale, b.Dy()*o.scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), img, b, draw.Src, nil)
		img = big
	}
	return img, r.Stats(), nil
}

// frame paints the current view into an RGBA image.
func frame(r *render.Renderer) *image.RGBA {
	w, h := r.Width(), r.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	line := make([]uint16, w)
	r.PaintStart()
	for y := 0; y < h; y++ {
		r.PaintLine(0, y, line)
		for x, c := range line {
			img.SetRGBA(x, y, rgbaFrom565(c))
		}
	}
	r.PaintFinished()
	return img
}

func rgbaFrom565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xFF,
	}
}

var errFormat = errors.New("unsupported image format")

// encode writes img as PNG or BMP, chosen by the file extension of name.
// "-" writes PNG.
func encode(w io.Writer, name string, img image.Image) error {
	if name == "-" {
		return png.Encode(w, img)
	}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", errFormat, ext)
	}
}
