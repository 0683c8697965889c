// Command fbsnap renders a fractal view without a display and writes it as
// an image. A command script moves the view before the snapshot:
//
//	fbsnap -o ship.png -formula "burning ship" -do "zoom-in 4; scroll 40 -12; iter 600"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"fixbrot/internal/script"
	"fixbrot/render"
)

func main() {
	var (
		width    = flag.Int("w", 320, "Canvas width.")
		height   = flag.Int("h", 320, "Canvas height.")
		outPath  = flag.String("o", "fbsnap.png", "Output file (.png or .bmp, - for PNG on stdout).")
		formula  = flag.String("formula", "mandelbrot", "Formula name or index.")
		iter     = flag.Int("iter", 0, "Iteration cap (0 = default).")
		palette  = flag.String("palette", "heatmap", "Palette: heatmap, rainbow, gray or stripe.")
		slope    = flag.Int("slope", render.DefaultPaletteSlope, "Palette slope (0-4).")
		workers  = flag.Int("workers", 0, "Evaluation goroutines (0 = cooperative).")
		packed12 = flag.Bool("packed12", false, "Store pixels in 12 bits (iteration cap 4093).")
		do       = flag.String("do", "", "Commands applied before the snapshot, separated by ';'.")
		scale    = flag.Int("scale", 1, "Integer upscale factor for the output image.")
		verbose  = flag.Bool("v", false, "Log engine diagnostics to stderr.")
	)
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	o := options{width: *width, height: *height, scale: max(*scale, 1), workers: *workers}
	o.cfg = render.DefaultConfig(*width, *height)
	o.cfg.Packed12 = *packed12
	o.cfg.PaletteSlope = *slope
	if *iter > 0 {
		o.cfg.MaxIter = *iter
	}
	var err error
	if o.cfg.Formula, err = script.ParseFormula(*formula); err != nil {
		fatalf("formula: %v", err)
	}
	if o.cfg.Palette, err = render.ParsePalette(*palette); err != nil {
		fatalf("palette: %v", err)
	}
	if o.script, err = script.Parse(*do); err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	img, st, err := snapshot(ctx, o)
	if err != nil {
		fatalf("render: %v", err)
	}

	var out io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		out = f
	}
	if err := encode(out, *outPath, img); err != nil {
		fatalf("encode: %v", err)
	}
	if *outPath != "-" {
		fmt.Fprintf(os.Stderr, "%s: %d passes, %d evaluated, %d corrections\n", *outPath, st.Passes, st.Evaluated, st.Corrections)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
