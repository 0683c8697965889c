package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fixbrot/fractal"
	"fixbrot/render"
)

// Pool spreads dispatched pixels over several workers.
//
// Dispatch round-robins over workers that have room; Collect drains the
// worker with the largest result backlog first so no pipeline stalls on a
// full result ring.
type Pool struct {
	workers []*Worker
	next    int
}

// NewPool creates n workers (at least one) sharing an evaluator.
func NewPool(n int, eval fractal.Evaluator) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{workers: make([]*Worker, n)}
	for i := range p.workers {
		p.workers[i] = New(eval)
	}
	return p
}

// Workers returns the pool members.
func (p *Pool) Workers() []*Worker { return p.workers }

// SetScene publishes s to every worker.
func (p *Pool) SetScene(s *fractal.Scene) {
	for _, w := range p.workers {
		w.SetScene(s)
	}
}

// Dispatch hands pt to the next worker with room.
func (p *Pool) Dispatch(pt fractal.Point) bool {
	n := len(p.workers)
	for i := 0; i < n; i++ {
		idx := (p.next + i) % n
		if p.workers[idx].Dispatch(pt) {
			p.next = (idx + 1) % n
			return true
		}
	}
	return false
}

// Collect returns one cell from the busiest worker.
func (p *Pool) Collect() (fractal.Cell, bool) {
	best, most := -1, 0
	for i, w := range p.workers {
		if b := w.Backlog(); b > most {
			best, most = i, b
		}
	}
	if best >= 0 {
		if c, ok := p.workers[best].Collect(); ok {
			return c, true
		}
	}
	for _, w := range p.workers {
		if c, ok := w.Collect(); ok {
			return c, true
		}
	}
	return fractal.Cell{}, false
}

// Service runs every worker inline with the given per-worker budget. It is
// the cooperative alternative to Run.
func (p *Pool) Service(budget int) int {
	total := 0
	for _, w := range p.workers {
		total += w.Service(budget)
	}
	return total
}

// Evaluated sums the evaluation counters of all workers.
func (p *Pool) Evaluated() uint64 {
	var total uint64
	for _, w := range p.workers {
		total += w.Evaluated()
	}
	return total
}

// Run starts one goroutine per worker and blocks until ctx is cancelled.
// Callers must not use Service concurrently with Run.
func (p *Pool) Run(ctx context.Context) error {
	log := render.Logger()
	log.Debug("worker pool started", slog.Int("workers", len(p.workers)))
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		w := w
		g.Go(func() error { return w.Run(gctx) })
	}
	err := g.Wait()
	log.Debug("worker pool stopped", slog.Any("err", err))
	return err
}
