//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"fixbrot/app"
	"fixbrot/hal"
	"fixbrot/internal/script"
	"fixbrot/render"
)

func main() {
	var hcfg hal.HeadlessConfig
	cfg := app.DefaultConfig()
	var formula, palette string
	var debug, noHUD bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.IntVar(&hcfg.Width, "w", 320, "Canvas width in headless mode.")
	flag.IntVar(&hcfg.Height, "h", 320, "Canvas height in headless mode.")
	flag.StringVar(&hcfg.Shot, "shot", "", "Write the last frame to this PNG file when a headless run ends.")
	flag.IntVar(&cfg.Workers, "workers", 0, "Evaluation goroutines (0 = cooperative).")
	flag.BoolVar(&cfg.Packed12, "packed12", false, "Store pixels in 12 bits (iteration cap 4093).")
	flag.StringVar(&formula, "formula", "mandelbrot", "Formula name or index.")
	flag.IntVar(&cfg.MaxIter, "iter", cfg.MaxIter, "Iteration cap.")
	flag.StringVar(&palette, "palette", "heatmap", "Palette: heatmap, rainbow, gray or stripe.")
	flag.IntVar(&cfg.PaletteSlope, "slope", cfg.PaletteSlope, "Palette slope (0-4).")
	flag.StringVar(&cfg.Script, "do", "", "Commands to run after the first pass, separated by ';'.")
	flag.BoolVar(&noHUD, "no-hud", false, "Start with the HUD hidden.")
	flag.BoolVar(&cfg.NoSerial, "no-serial", false, "Do not read commands from stdin.")
	flag.BoolVar(&debug, "debug", false, "Log engine debug records.")
	flag.Parse()

	var err error
	if cfg.Formula, err = script.ParseFormula(formula); err != nil {
		fail(err)
	}
	if cfg.Palette, err = render.ParsePalette(palette); err != nil {
		fail(err)
	}
	if _, err := script.Parse(cfg.Script); err != nil {
		fail(err)
	}
	cfg.HUD = !noHUD
	if debug {
		cfg.LogLevel = slog.LevelDebug
	}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fail(err)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
