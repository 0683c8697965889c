// Package script parses and applies view commands such as "zoom-in 3" or
// "scroll 10 -4". The explorer accepts them as MsgCommand lines and fbsnap
// replays them from its -do flag.
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"fixbrot/fractal"
	"fixbrot/render"
)

// Op is a command verb.
type Op uint8

const (
	OpZoomIn Op = iota + 1
	OpZoomOut
	OpScroll
	OpIter
	OpFormula
	OpPalette
	OpSlope
	OpPhase
	OpFlip
	OpReset
)

var opNames = map[string]Op{
	"zoom-in":  OpZoomIn,
	"zoom-out": OpZoomOut,
	"scroll":   OpScroll,
	"iter":     OpIter,
	"formula":  OpFormula,
	"palette":  OpPalette,
	"slope":    OpSlope,
	"phase":    OpPhase,
	"flip":     OpFlip,
	"reset":    OpReset,
}

func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}
	return "unknown"
}

// Command is one view change. Repeated zooms are expanded into separate
// commands so each can be awaited.
type Command struct {
	Op      Op
	X, Y    int
	N       int
	Formula fractal.Formula
	Palette render.PaletteKind
	On      bool
}

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("script: syntax error")

// Parse parses a script. Commands are separated by newlines or ';'. A '#'
// starts a comment.
func Parse(src string) ([]Command, error) {
	var out []Command
	for i, line := range strings.FieldsFunc(src, func(r rune) bool { return r == '\n' || r == ';' }) {
		words, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("%w: command %d: %v", ErrSyntax, i+1, err)
		}
		if len(words) == 0 {
			continue
		}
		cmds, err := parseWords(words)
		if err != nil {
			return nil, fmt.Errorf("%w: command %d (%s): %v", ErrSyntax, i+1, words[0], err)
		}
		out = append(out, cmds...)
	}
	return out, nil
}

func parseWords(words []string) ([]Command, error) {
	op, ok := opNames[strings.ToLower(words[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command")
	}
	args := words[1:]
	c := Command{Op: op}
	switch op {
	case OpZoomIn, OpZoomOut:
		n := 1
		if len(args) > 1 {
			return nil, fmt.Errorf("want at most one count")
		}
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 || v > 64 {
				return nil, fmt.Errorf("bad count %q", args[0])
			}
			n = v
		}
		out := make([]Command, n)
		for i := range out {
			out[i] = c
		}
		return out, nil
	case OpScroll:
		if len(args) != 2 {
			return nil, fmt.Errorf("want dx dy")
		}
		var err error
		if c.X, err = strconv.Atoi(args[0]); err != nil {
			return nil, fmt.Errorf("bad dx %q", args[0])
		}
		if c.Y, err = strconv.Atoi(args[1]); err != nil {
			return nil, fmt.Errorf("bad dy %q", args[1])
		}
	case OpIter, OpSlope, OpPhase:
		if len(args) != 1 {
			return nil, fmt.Errorf("want one number")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("bad number %q", args[0])
		}
		c.N = v
	case OpFormula:
		if len(args) != 1 {
			return nil, fmt.Errorf("want a formula name or index")
		}
		f, err := ParseFormula(args[0])
		if err != nil {
			return nil, err
		}
		c.Formula = f
	case OpPalette:
		if len(args) != 1 {
			return nil, fmt.Errorf("want a palette name")
		}
		p, err := render.ParsePalette(args[0])
		if err != nil {
			return nil, err
		}
		c.Palette = p
	case OpFlip:
		c.On = true
		if len(args) == 1 {
			v, ok := parseFlag(args[0])
			if !ok {
				return nil, fmt.Errorf("bad flag %q", args[0])
			}
			c.On = v
		} else if len(args) > 1 {
			return nil, fmt.Errorf("want at most one flag")
		}
	case OpReset:
		if len(args) != 0 {
			return nil, fmt.Errorf("takes no arguments")
		}
	}
	return []Command{c}, nil
}

// parseFlag accepts on/off and yes/no besides the strconv.ParseBool forms.
func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, true
	case "off", "no", "n":
		return false, true
	}
	v, err := strconv.ParseBool(s)
	return v, err == nil
}

// ParseFormula accepts a formula name or its index.
func ParseFormula(s string) (fractal.Formula, error) {
	if n, err := strconv.Atoi(s); err == nil {
		f := fractal.Formula(n)
		if n < 0 || !f.Valid() {
			return 0, fmt.Errorf("formula index %d out of range", n)
		}
		return f, nil
	}
	f, ok := fractal.ParseFormula(s)
	if !ok {
		return 0, fmt.Errorf("unknown formula %q", s)
	}
	return f, nil
}

// Apply performs c on r. It returns render.ErrBusy unchanged so callers can
// retry once the current pass finishes.
func (c Command) Apply(r *render.Renderer) error {
	switch c.Op {
	case OpZoomIn:
		return r.ZoomIn()
	case OpZoomOut:
		return r.ZoomOut()
	case OpScroll:
		return r.Scroll(c.X, c.Y)
	case OpIter:
		return r.SetMaxIter(c.N)
	case OpFormula:
		return r.SetFormula(c.Formula)
	case OpPalette:
		r.SetPalette(c.Palette)
	case OpSlope:
		r.SetPaletteSlope(c.N)
	case OpPhase:
		r.SetPalettePhase(c.N)
	case OpFlip:
		return r.SetVertFlip(c.On)
	case OpReset:
		return r.Init()
	default:
		return fmt.Errorf("script: unknown op %d", c.Op)
	}
	return nil
}

func (c Command) String() string {
	switch c.Op {
	case OpScroll:
		return fmt.Sprintf("scroll %d %d", c.X, c.Y)
	case OpIter, OpSlope, OpPhase:
		return fmt.Sprintf("%s %d", c.Op, c.N)
	case OpFormula:
		return fmt.Sprintf("formula %q", c.Formula.String())
	case OpPalette:
		return "palette " + c.Palette.String()
	case OpFlip:
		return "flip " + strconv.FormatBool(c.On)
	}
	return c.Op.String()
}
