package worker

import (
	"time"

	"fixbrot/fractal"
)

// Host adapts a Pool to render.Host. Started and Finished are optional
// observers of the pass lifecycle.
type Host struct {
	*Pool
	Now      func() uint64
	Started  func(s *fractal.Scene)
	Finished func(err error)
}

// NewHost wraps p with a wall clock.
func NewHost(p *Pool) *Host {
	start := time.Now()
	return &Host{
		Pool: p,
		Now:  func() uint64 { return uint64(time.Since(start).Milliseconds()) },
	}
}

func (h *Host) OnRenderStart(s *fractal.Scene) {
	h.SetScene(s)
	if h.Started != nil {
		h.Started(s)
	}
}

func (h *Host) OnRenderFinished(err error) {
	if h.Finished != nil {
		h.Finished(err)
	}
}

func (h *Host) NowMillis() uint64 { return h.Now() }
