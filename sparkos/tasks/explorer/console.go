package explorer

import (
	"fixbrot/sparkos/fonts"

	"tinygo.org/x/tinyterm"
)

const consoleRows = 8

// console mirrors log lines in a strip at the bottom of the screen.
type console struct {
	s     *surface
	t     *tinyterm.Terminal
	dirty bool
}

func newConsole(width int) *console {
	c := &console{s: newSurface(width, consoleRows*fonts.LineHeight)}
	c.t = tinyterm.NewTerminal(c.s)
	c.t.Configure(&tinyterm.Config{
		Font:              fonts.System,
		FontHeight:        fonts.LineHeight,
		FontOffset:        fonts.Baseline,
		UseSoftwareScroll: true,
	})
	return c
}

func (c *console) writeLine(line []byte) {
	_, _ = c.t.Write(line)
	_, _ = c.t.Write([]byte("\r\n"))
	c.dirty = true
}
