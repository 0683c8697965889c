package explorer

import (
	"fixbrot/hal"
	"fixbrot/render"
	"fixbrot/sparkos/kernel"
)

const (
	maxScrollSpeed = 12
	iterStep       = 100
)

// action is a view change waiting for the renderer to become idle.
type action struct {
	name  string
	apply func(r *render.Renderer) error

	// Set for actions that came from MsgCommand; the reply goes out when
	// the action has been applied.
	reply kernel.Capability
	id    uint32
	last  bool
}

// bindKey maps a key to a view action. Display toggles (F1-F3, Esc, 'c')
// are handled by the task itself.
func bindKey(code hal.KeyCode, r rune) (action, bool) {
	switch code {
	case hal.KeyEnter:
		return action{name: "zoom-in", apply: (*render.Renderer).ZoomIn}, true
	case hal.KeyBackspace:
		return action{name: "zoom-out", apply: (*render.Renderer).ZoomOut}, true
	case hal.KeyHome:
		return action{name: "reset", apply: (*render.Renderer).Init}, true
	}
	switch r {
	case '+', '=':
		return action{name: "zoom-in", apply: (*render.Renderer).ZoomIn}, true
	case '-':
		return action{name: "zoom-out", apply: (*render.Renderer).ZoomOut}, true
	case '[':
		return action{name: "iter-", apply: func(rr *render.Renderer) error {
			return rr.SetMaxIter(rr.MaxIter() - iterStep)
		}}, true
	case ']':
		return action{name: "iter+", apply: func(rr *render.Renderer) error {
			return rr.SetMaxIter(rr.MaxIter() + iterStep)
		}}, true
	case 'f':
		return action{name: "formula+", apply: func(rr *render.Renderer) error {
			return rr.SetFormula(rr.Formula().Next())
		}}, true
	case 'F':
		return action{name: "formula-", apply: func(rr *render.Renderer) error {
			return rr.SetFormula(rr.Formula().Prev())
		}}, true
	case 'v':
		return action{name: "flip", apply: func(rr *render.Renderer) error {
			return rr.SetVertFlip(!rr.VertFlip())
		}}, true
	case 'r':
		return action{name: "reset", apply: (*render.Renderer).Init}, true
	case 'p':
		return action{name: "palette", apply: func(rr *render.Renderer) error {
			rr.SetPalette(rr.Palette().Next())
			return nil
		}}, true
	case ',':
		return action{name: "slope-", apply: func(rr *render.Renderer) error {
			rr.SetPaletteSlope(rr.PaletteSlope() - 1)
			return nil
		}}, true
	case '.':
		return action{name: "slope+", apply: func(rr *render.Renderer) error {
			rr.SetPaletteSlope(rr.PaletteSlope() + 1)
			return nil
		}}, true
	}
	return action{}, false
}

type direction uint8

const (
	dirLeft direction = 1 << iota
	dirRight
	dirUp
	dirDown
)

func arrow(code hal.KeyCode) direction {
	switch code {
	case hal.KeyLeft:
		return dirLeft
	case hal.KeyRight:
		return dirRight
	case hal.KeyUp:
		return dirUp
	case hal.KeyDown:
		return dirDown
	}
	return 0
}

// scroller turns held arrow keys into scroll deltas. Speed ramps up by one
// pixel per frame while any arrow is held. Deltas accumulate until the
// renderer accepts them.
type scroller struct {
	held   direction
	speed  int
	dx, dy int
}

func (s *scroller) press(d direction)   { s.held |= d }
func (s *scroller) release(d direction) { s.held &^= d }

// step advances one frame.
func (s *scroller) step() {
	if s.held == 0 {
		s.speed = 0
		return
	}
	s.speed = min(s.speed+1, maxScrollSpeed)
	if s.held&dirLeft != 0 {
		s.dx -= s.speed
	}
	if s.held&dirRight != 0 {
		s.dx += s.speed
	}
	if s.held&dirUp != 0 {
		s.dy -= s.speed
	}
	if s.held&dirDown != 0 {
		s.dy += s.speed
	}
}

// flush hands the accumulated delta to r. It keeps the delta when r is busy.
func (s *scroller) flush(r *render.Renderer) error {
	if s.dx == 0 && s.dy == 0 {
		return nil
	}
	if err := r.Scroll(s.dx, s.dy); err != nil {
		return err
	}
	s.dx, s.dy = 0, 0
	return nil
}
