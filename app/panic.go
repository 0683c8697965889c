package app

import (
	"fmt"
	"image/color"
	"strings"

	"fixbrot/hal"
	"fixbrot/sparkos/fonts"
	"fixbrot/sparkos/kernel"

	"tinygo.org/x/tinyfont"
)

// installPanicHandler logs the first task panic and paints it over the
// framebuffer. The panicking task never returns.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil {
			select {}
		}

		fb.ClearRGB(0x20, 0, 0)
		d := panicDisplay{fb: fb}
		fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
		cols := max(fb.Width()/fonts.Advance, 1)

		y := 0
		for _, line := range lines {
			for _, chunk := range wrap(line, cols) {
				if y+fonts.LineHeight > fb.Height() {
					_ = fb.Present()
					select {}
				}
				tinyfont.WriteLine(d, fonts.System, 0, int16(y+fonts.Baseline), chunk, fg)
				y += fonts.LineHeight
			}
		}

		_ = fb.Present()
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"fixbrot panic",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// wrap splits s into chunks of at most n runes.
func wrap(s string, n int) []string {
	var out []string
	r := []rune(s)
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return append(out, string(r))
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	hal.SetRGB565(d.fb, int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d panicDisplay) Display() error { return nil }
