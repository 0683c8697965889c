// Package app wires the kernel, the system services and the explorer task
// onto a HAL.
package app

import (
	"log/slog"

	"fixbrot/fractal"
	"fixbrot/hal"
	"fixbrot/internal/buildinfo"
	"fixbrot/internal/script"
	"fixbrot/render"
	logclient "fixbrot/sparkos/client/logger"
	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/services/cmdline"
	"fixbrot/sparkos/services/keys"
	"fixbrot/sparkos/services/logger"
	"fixbrot/sparkos/tasks/explorer"
)

type system struct {
	k *kernel.Kernel

	// explorerEP accepts MsgKey and MsgCommand messages.
	explorerEP kernel.Capability
}

// Config is the startup configuration. The zero value runs the default view
// with cooperative evaluation.
type Config struct {
	Workers      int
	Packed12     bool
	Formula      fractal.Formula
	MaxIter      int
	Palette      render.PaletteKind
	PaletteSlope int
	HUD          bool

	// Script is a command script applied after the first pass.
	Script string

	// LogLevel filters engine diagnostics. The zero value is Info.
	LogLevel slog.Level

	// NoSerial leaves the HAL serial port unread.
	NoSerial bool
}

// DefaultConfig shows the HUD over the default view.
func DefaultConfig() Config {
	return Config{
		MaxIter:      fractal.DefaultIter,
		PaletteSlope: render.DefaultPaletteSlope,
		HUD:          true,
	}
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

// NewWithConfig starts the OS. The returned step function is called by the
// host runner once per frame.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	cmds, err := script.Parse(cfg.Script)
	if err != nil {
		return nil, err
	}

	installPanicHandler(h)
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	explorerEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	log := logclient.NewSlog(k.NewContext(), logEP.Restrict(kernel.RightSend), cfg.LogLevel)
	render.SetLogger(log)
	log.Info("fixbrot: boot", buildinfo.Attrs()...)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)).WithTee(explorerEP.Restrict(kernel.RightSend)))
	k.AddTask(keys.New(h.Input(), explorerEP.Restrict(kernel.RightSend)))
	k.AddTask(explorer.New(h.Display(), explorerEP.Restrict(kernel.RightRecv), explorer.Config{
		Workers:      cfg.Workers,
		Packed12:     cfg.Packed12,
		Formula:      cfg.Formula,
		MaxIter:      cfg.MaxIter,
		Palette:      cfg.Palette,
		PaletteSlope: cfg.PaletteSlope,
		HUD:          cfg.HUD,
		LED:          h.LED(),
		Script:       cmds,
		Log:          log,
	}))

	if serial := h.Serial(); serial != nil && !cfg.NoSerial {
		replyEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		k.AddTask(cmdline.New(serial, explorerEP.Restrict(kernel.RightSend), replyEP))
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k, explorerEP: explorerEP}, nil
}
