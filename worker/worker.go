// Package worker evaluates dispatched pixels off the engine's critical path.
//
// Each Worker owns a dispatch ring and a result ring. The engine is the only
// producer of the dispatch ring and the only consumer of the result ring; the
// worker is the other side of both, so the rings need no locks even when the
// worker runs on its own goroutine.
package worker

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"fixbrot/fractal"
	"fixbrot/queue"
	"fixbrot/render"
)

// Depth is the ring depth of every worker, matching the engine's batch size.
const Depth = render.BatchSize

const (
	idleSpins = 64
	idleSleep = 200 * time.Microsecond
)

// Worker evaluates pixels for the scene most recently passed to SetScene.
type Worker struct {
	_     [0]func() // prevent accidental copying.
	eval  fractal.Evaluator
	scene atomic.Pointer[fractal.Scene]
	in    *queue.Ring[fractal.Point]
	out   *queue.Ring[fractal.Cell]
	done  atomic.Uint64
}

// New creates a worker. A nil evaluator selects fractal.Formulas.
func New(eval fractal.Evaluator) *Worker {
	if eval == nil {
		eval = fractal.Formulas
	}
	return &Worker{
		eval: eval,
		in:   queue.New[fractal.Point](Depth),
		out:  queue.New[fractal.Cell](Depth),
	}
}

// SetScene publishes the scene for subsequent dispatches. The engine calls it
// only between passes, when nothing is in flight.
func (w *Worker) SetScene(s *fractal.Scene) {
	cp := *s
	w.scene.Store(&cp)
}

// Dispatch queues p for evaluation. It returns false when the worker is full.
func (w *Worker) Dispatch(p fractal.Point) bool {
	return w.in.Enqueue(p) == nil
}

// Collect returns one evaluated cell, if any.
func (w *Worker) Collect() (fractal.Cell, bool) {
	return w.out.Dequeue()
}

// Full reports whether Dispatch would fail.
func (w *Worker) Full() bool { return w.in.Full() }

// Queued is the number of dispatched, not yet evaluated pixels.
func (w *Worker) Queued() int { return w.in.Len() }

// Backlog is the number of evaluated, not yet collected cells.
func (w *Worker) Backlog() int { return w.out.Len() }

// Evaluated is the total number of pixels this worker has evaluated.
func (w *Worker) Evaluated() uint64 { return w.done.Load() }

// Service evaluates up to budget queued pixels (all currently queued when
// budget <= 0) and returns how many it evaluated. It stops early when the
// result ring is full.
func (w *Worker) Service(budget int) int {
	n := w.in.Len()
	if budget > 0 && budget < n {
		n = budget
	}
	s := w.scene.Load()
	if s == nil {
		return 0
	}
	done := 0
	for ; done < n; done++ {
		if w.out.Full() {
			break
		}
		p, ok := w.in.Peek()
		if !ok {
			break
		}
		c := fractal.Cell{Point: p, Iter: fractal.Result(w.eval.Evaluate(s, p), s.MaxIter)}
		// Cannot fail: only this worker fills out, and it was not full.
		_ = w.out.Enqueue(c)
		w.in.Dequeue()
	}
	if done > 0 {
		w.done.Add(uint64(done))
	}
	return done
}

// Run services the worker until ctx is cancelled, yielding while idle.
func (w *Worker) Run(ctx context.Context) error {
	idle := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.Service(0) > 0 {
			idle = 0
			continue
		}
		idle++
		if idle < idleSpins {
			runtime.Gosched()
			continue
		}
		time.Sleep(idleSleep)
	}
}
