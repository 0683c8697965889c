// Package keys turns HAL keyboard events into MsgKey messages, adding
// auto-repeat for navigation keys.
package keys

import (
	"fixbrot/hal"
	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/proto"
)

const (
	// Ticks are 1ms on host and TinyGo.
	repeatDelayTicks = 300
	repeatRateTicks  = 40

	maxPending = 32
)

type event struct {
	code  hal.KeyCode
	r     rune
	flags proto.KeyFlags
}

type Service struct {
	in     hal.Input
	outCap kernel.Capability

	events  <-chan hal.KeyEvent
	pending []event

	held           hal.KeyCode
	nextRepeatTick uint64
}

func New(in hal.Input, outCap kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil {
		return
	}
	kbd := s.in.Keyboard()
	if kbd == nil {
		return
	}
	s.events = kbd.Events()
	if s.events == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			s.handle(ev, ctx.NowTick())
			s.flush(ctx)
		case tick := <-tickCh:
			s.repeat(tick)
			s.flush(ctx)
		}
	}
}

func (s *Service) handle(ev hal.KeyEvent, now uint64) {
	if !ev.Press {
		if ev.Code == s.held && s.held != hal.KeyUnknown {
			s.held = hal.KeyUnknown
			s.push(event{code: ev.Code, flags: proto.KeyRelease})
		}
		return
	}
	s.push(event{code: ev.Code, r: ev.Rune})
	if ev.Rune == 0 && repeatable(ev.Code) {
		s.held = ev.Code
		s.nextRepeatTick = now + repeatDelayTicks
	}
}

func (s *Service) repeat(tick uint64) {
	if s.held == hal.KeyUnknown || tick < s.nextRepeatTick {
		return
	}
	s.push(event{code: s.held, flags: proto.KeyRepeat})
	s.nextRepeatTick = tick + repeatRateTicks
}

// push queues an event. Repeats are dropped first when the consumer lags.
func (s *Service) push(ev event) {
	if len(s.pending) >= maxPending {
		if ev.flags&proto.KeyRepeat != 0 {
			return
		}
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, ev)
}

func (s *Service) flush(ctx *kernel.Context) {
	if !s.outCap.Valid() {
		s.pending = s.pending[:0]
		return
	}
	for len(s.pending) > 0 {
		ev := s.pending[0]
		res := ctx.SendToCapResult(s.outCap, uint16(proto.MsgKey), proto.KeyPayload(uint16(ev.code), ev.r, ev.flags), kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			return
		}
		s.pending = s.pending[1:]
	}
}

func repeatable(code hal.KeyCode) bool {
	switch code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace:
		return true
	default:
		return false
	}
}
