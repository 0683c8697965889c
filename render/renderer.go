// Package render is the incremental escape-time engine.
//
// The engine keeps one iteration count per pixel and evaluates only the
// pixels next to a boundary between differing counts. A pass seeds a coarse
// grid and the canvas perimeter, then grows outward from every pixel whose
// neighbors disagree. Regions fully enclosed by one value are never
// evaluated; they are flood-filled when the pass completes. View changes
// (scroll, zoom, iteration cap) keep every pixel that is still valid and
// restart tracing only along the seams.
//
// The engine does not evaluate pixels itself. It hands points to a Host,
// which evaluates them on any number of workers and returns the results in
// any order. All Renderer methods must be called from a single goroutine.
package render

import (
	"fmt"
	"log/slog"
	"math/bits"

	"fixbrot/fixed"
	"fixbrot/fractal"
	"fixbrot/queue"
)

// Host connects the engine to its workers and clock.
type Host interface {
	// OnRenderStart announces a new pass. Points dispatched afterwards
	// belong to s, with Real/Imag at pixel (0, 0).
	OnRenderStart(s *fractal.Scene)
	// OnRenderFinished reports the end of a pass. err is nil on success.
	OnRenderFinished(err error)
	// Dispatch hands a point to a worker, or returns false when every
	// worker is full. The engine retries on the next Service.
	Dispatch(p fractal.Point) bool
	// Collect returns one evaluated cell, if any.
	Collect() (fractal.Cell, bool)
	// NowMillis is a monotonic clock.
	NowMillis() uint64
}

// Size limits of the canvas.
const (
	MinSize = 2
	MaxSize = 4096
)

// Config describes a canvas and its initial scene.
type Config struct {
	Width, Height int
	// Packed12 stores pixels in 12 bits, capping the iteration limit at
	// MaxIter12.
	Packed12 bool

	Formula      fractal.Formula
	MaxIter      int
	Palette      PaletteKind
	PaletteSlope int

	// Evaluator is used for the correction pass. Nil selects
	// fractal.Formulas. It must agree with the host's workers.
	Evaluator fractal.Evaluator

	// QueueDepth overrides the pending queue size. Zero selects
	// (Width+Height)*QueueDepthFactor.
	QueueDepth int
}

// DefaultConfig returns the configuration of a fresh Mandelbrot view.
func DefaultConfig(w, h int) Config {
	return Config{
		Width:        w,
		Height:       h,
		Formula:      fractal.Mandelbrot,
		MaxIter:      fractal.DefaultIter,
		Palette:      Heatmap,
		PaletteSlope: DefaultPaletteSlope,
	}
}

// Stats counts engine activity since New.
type Stats struct {
	Passes      uint64
	Finished    uint64
	Evaluated   uint64
	Corrections uint64
	Overflows   uint64
	// LastPassMs is the duration of the most recent completed pass.
	LastPassMs uint64
}

// Renderer owns the pixel buffer and the view.
type Renderer struct {
	cfg  Config
	host Host
	eval fractal.Evaluator

	w, h  int
	clog2 int
	pix   pixels

	pending *queue.Ring[fractal.Point]
	busy    int
	corrX   int
	corrY   int
	accum   uint32
	overrun bool

	// scene.Real/Imag are the view center; pass is what the workers see.
	scene    fractal.Scene
	pass     fractal.Scene
	scaleExp int
	vertFlip bool

	pal palette

	zoom       tween
	paintScale fixed.Fixed32
	paintX     []int
	repaint    bool
	lastMs     uint64
	passStart  uint64

	stats Stats
}

// New allocates a renderer. Call Init before anything else.
func New(cfg Config, host Host) (*Renderer, error) {
	if cfg.Width < MinSize || cfg.Height < MinSize || cfg.Width > MaxSize || cfg.Height > MaxSize {
		return nil, fmt.Errorf("render: canvas %dx%d out of range [%d, %d]", cfg.Width, cfg.Height, MinSize, MaxSize)
	}
	if host == nil {
		return nil, fmt.Errorf("render: nil host")
	}
	eval := cfg.Evaluator
	if eval == nil {
		eval = fractal.Formulas
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = (cfg.Width + cfg.Height) * QueueDepthFactor
	}
	return &Renderer{
		cfg:        cfg,
		host:       host,
		eval:       eval,
		w:          cfg.Width,
		h:          cfg.Height,
		clog2:      bits.Len(uint(max(cfg.Width, cfg.Height))),
		pix:        newPixels(cfg.Width, cfg.Height, cfg.Packed12),
		pending:    queue.New[fractal.Point](depth),
		corrY:      cfg.Height,
		paintX:     make([]int, cfg.Width),
		paintScale: fixed.One32,
	}, nil
}

// Init resets the view to the configured scene and starts the first pass.
func (r *Renderer) Init() error {
	if r.Busy() {
		return ErrBusy
	}
	r.scene = fractal.Scene{
		Formula: r.cfg.Formula,
		Real:    -(fixed.One64 >> 1),
		MaxIter: r.clampIter(r.cfg.MaxIter),
	}
	if !r.scene.Formula.Valid() {
		r.scene.Formula = fractal.Mandelbrot
	}
	r.scaleExp = InitScaleExp
	r.updateStep()
	r.vertFlip = false
	r.pal.load(r.cfg.Palette, r.cfg.PaletteSlope)
	r.pal.phase = 0
	r.zoom = tween{}
	r.setPaintScale(fixed.One32)
	r.pix.clear()
	err := r.startRender()
	r.repaint = true
	return err
}

// Width and Height are the canvas size in pixels.
func (r *Renderer) Width() int  { return r.w }
func (r *Renderer) Height() int { return r.h }

// CenterRe and CenterIm are the view center.
func (r *Renderer) CenterRe() fixed.Fixed64 { return r.scene.Real }
func (r *Renderer) CenterIm() fixed.Fixed64 { return r.scene.Imag }

// Step is the distance between adjacent pixels.
func (r *Renderer) Step() fixed.Fixed64 { return r.scene.Step }

func (r *Renderer) ScaleExp() int            { return r.scaleExp }
func (r *Renderer) MaxIter() int             { return r.scene.MaxIter }
func (r *Renderer) Formula() fractal.Formula { return r.scene.Formula }
func (r *Renderer) VertFlip() bool           { return r.vertFlip }
func (r *Renderer) Palette() PaletteKind     { return r.pal.kind }
func (r *Renderer) PaletteSlope() int        { return r.pal.slope }
func (r *Renderer) PaletteSize() int         { return r.pal.size }
func (r *Renderer) PalettePhase() int        { return r.pal.phase }
func (r *Renderer) Stats() Stats             { return r.stats }

// Fixed32 reports whether the current view is evaluated at Q8.24.
func (r *Renderer) Fixed32() bool { return r.scene.Step.IsFixed32() }

// Scene returns the scene of the current pass, with Real/Imag at pixel (0, 0).
func (r *Renderer) Scene() fractal.Scene { return r.workerScene() }

// IterLimit is the highest accepted iteration cap for the storage width.
func (r *Renderer) IterLimit() int {
	if r.pix.packed {
		return MaxIter12
	}
	return MaxIter16
}

// MaxScaleExp is the deepest zoom: one pixel per Q8.56 ulp.
func (r *Renderer) MaxScaleExp() int { return fixed.Frac64 - r.clog2 }

// StartRender runs a pass over the current buffer: Blank pixels on the seed
// grid and the perimeter are traced and finished pixels are kept. On a fully
// rendered canvas it leaves the buffer unchanged.
func (r *Renderer) StartRender() error {
	if err := r.startRender(); err != nil {
		return err
	}
	r.repaint = true
	r.feed()
	return nil
}

// Busy reports whether a pass is in progress, including its correction scan.
func (r *Renderer) Busy() bool { return r.busy > 0 || r.corrY < r.h }

// Pending is the number of queued or in-flight points.
func (r *Renderer) Pending() int { return r.busy }

// Pixel returns the state of (x, y), or Wall outside the canvas.
func (r *Renderer) Pixel(x, y int) PixelState { return r.cell(x, y).state() }

// RepaintRequested reports whether the canvas should be repainted.
func (r *Renderer) RepaintRequested() bool { return r.repaint }

// Animating reports whether a zoom tween is running.
func (r *Renderer) Animating() bool { return r.lastMs < r.zoom.end }

// Service advances the pass by one batch and updates the zoom tween. Call it
// from the main loop as often as possible.
func (r *Renderer) Service() error {
	now := r.host.NowMillis()
	r.lastMs = now
	var err error
	if r.Busy() {
		err = r.iterate()
	}
	r.updateTween(now)
	return err
}

func (r *Renderer) clampIter(n int) int {
	if n == 0 {
		n = fractal.DefaultIter
	}
	return min(max(n, fractal.MinIter), r.IterLimit())
}

func (r *Renderer) updateStep() {
	r.scene.Step = fixed.Exp2(-r.scaleExp - r.clog2)
}

func (r *Renderer) workerScene() fractal.Scene {
	s := r.scene
	s.Real -= s.Step.MulInt(r.w / 2)
	s.Imag -= s.Step.MulInt(r.h / 2)
	return s
}

func (r *Renderer) inside(x, y int) bool {
	return x >= 0 && x < r.w && y >= 0 && y < r.h
}

func (r *Renderer) cell(x, y int) code {
	if !r.inside(x, y) {
		return codeWall
	}
	return r.pix.at(x, y)
}

// resultCode converts a worker result into a stored code.
func (r *Renderer) resultCode(iter uint16) code {
	if iter == fractal.Capped || int(iter) >= r.pass.MaxIter {
		return codeCap
	}
	if iter == 0 {
		return 1
	}
	return code(iter)
}

// startRender begins a pass over the current buffer. Blank seeds on the
// coarse grid and the perimeter are queued; finished pixels are kept. The
// correction scan always follows the drained queue.
func (r *Renderer) startRender() error {
	if r.Busy() {
		return ErrBusy
	}
	r.pass = r.workerScene()
	r.host.OnRenderStart(&r.pass)
	r.pending.Clear()
	r.busy = 0
	r.corrX = 0
	r.corrY = 0
	r.accum = 0
	r.passStart = r.host.NowMillis()
	r.stats.Passes++
	Logger().Debug("render: pass started",
		slog.String("formula", r.pass.Formula.String()),
		slog.Int("scale", r.scaleExp),
		slog.Int("iter", r.pass.MaxIter),
		slog.Bool("fixed32", r.pass.Fixed32()))

	for y := CoarseStep / 2; y < r.h; y += CoarseStep {
		for x := CoarseStep / 2; x < r.w; x += CoarseStep {
			r.enqueue(x, y)
		}
	}
	for x := 0; x < r.w; x++ {
		r.enqueue(x, 0)
		r.enqueue(x, r.h-1)
	}
	for y := 1; y < r.h-1; y++ {
		r.enqueue(0, y)
		r.enqueue(r.w-1, y)
	}
	return r.overflow()
}

// enqueue queues a Blank pixel. Anything else is left alone.
func (r *Renderer) enqueue(x, y int) {
	if !r.inside(x, y) || r.pix.at(x, y) != codeBlank {
		return
	}
	if err := r.pending.Enqueue(fractal.Point{X: int16(x), Y: int16(y)}); err != nil {
		r.overrun = true
		return
	}
	r.pix.put(x, y, codeQueued)
	r.busy++
}

// overflow reports and clears a pending-queue overflow since the last call.
func (r *Renderer) overflow() error {
	if !r.overrun {
		return nil
	}
	r.overrun = false
	r.stats.Overflows++
	Logger().Error("render: pending queue overflow", slog.Int("depth", r.pending.Depth()))
	return ErrQueueOverflow
}

// feed moves pending points to the host until it refuses one.
func (r *Renderer) feed() {
	for {
		p, ok := r.pending.Peek()
		if !ok || !r.host.Dispatch(p) {
			return
		}
		r.pending.Dequeue()
	}
}

// compare queues c and d when b is finished and differs from a: the pair
// (a, b) straddles a boundary, so the pixels beside it may too.
func (r *Renderer) compare(a, b code, cx, cy, dx, dy int) {
	if !b.finished() || b == a {
		return
	}
	r.enqueue(cx, cy)
	r.enqueue(dx, dy)
}

// trace queues the neighbors of a freshly finished pixel that lie along a
// boundary.
func (r *Renderer) trace(x, y int, c code) {
	l, rt := r.cell(x-1, y), r.cell(x+1, y)
	u, d := r.cell(x, y-1), r.cell(x, y+1)
	r.compare(c, u, x-1, y, x-1, y-1)
	r.compare(c, d, x-1, y, x-1, y+1)
	r.compare(c, u, x+1, y, x+1, y-1)
	r.compare(c, d, x+1, y, x+1, y+1)
	r.compare(c, l, x, y-1, x-1, y-1)
	r.compare(c, rt, x, y-1, x+1, y-1)
	r.compare(c, l, x, y+1, x-1, y+1)
	r.compare(c, rt, x, y+1, x+1, y+1)
}

func (r *Renderer) iterate() error {
	r.feed()
	for i := 0; i < BatchSize; i++ {
		cl, ok := r.host.Collect()
		if !ok {
			break
		}
		r.busy--
		r.stats.Evaluated++
		x, y := int(cl.X), int(cl.Y)
		if !r.inside(x, y) {
			Logger().Warn("render: result outside canvas", slog.Int("x", x), slog.Int("y", y))
			continue
		}
		c := r.resultCode(cl.Iter)
		if c == codeCap {
			r.accum += uint32(r.pass.MaxIter)
		} else {
			r.accum += uint32(c)
		}
		r.pix.put(x, y, c)
		r.trace(x, y, c)
	}

	if r.accum >= r.repaintThreshold() {
		r.accum = 0
		r.repaint = true
	}

	if r.busy == 0 {
		r.correct()
	}
	r.feed()

	if !r.Busy() {
		r.fillBlank()
		now := r.host.NowMillis()
		r.stats.Finished++
		r.stats.LastPassMs = now - r.passStart
		Logger().Debug("render: pass finished", slog.Uint64("ms", r.stats.LastPassMs))
		r.host.OnRenderFinished(nil)
		r.repaint = true
	}
	return r.overflow()
}

// repaintThreshold is the accumulated iteration count that triggers a repaint
// mid-pass. It is halved while a zoom animates and doubled at Q8.24.
func (r *Renderer) repaintThreshold() uint32 {
	t := uint32(r.w * r.h * 4)
	if r.Animating() {
		t /= 2
	}
	if r.pass.Fixed32() {
		t *= 2
	}
	return t
}

// correct resumes the correction scan. Runs of Blank pixels bounded by two
// different finished values hide a boundary that tracing missed; the gap is
// bisected with direct evaluations and the boundary rows are requeued. One
// gap is handled per call.
func (r *Renderer) correct() {
	for r.corrY < r.h {
		y := r.corrY
		x0, iter0, blanks := -1, codeBlank, 0
		for r.corrX < r.w {
			iter1 := r.pix.at(r.corrX, y)
			if !iter1.finished() {
				blanks++
				r.corrX++
				continue
			}
			if iter1 == iter0 || blanks == 0 {
				blanks = 0
				x0, iter0 = r.corrX, iter1
				r.corrX++
				continue
			}
			x1 := r.corrX
			if x0 >= 0 {
				for x0+1 < x1 {
					xm := (x0 + x1) / 2
					m := r.resultCode(fractal.Result(r.eval.Evaluate(&r.pass, fractal.Point{X: int16(xm), Y: int16(y)}), r.pass.MaxIter))
					r.pix.put(xm, y, m)
					if m == iter0 {
						x0 = xm
					} else {
						x1 = xm
					}
				}
				r.enqueue(x0, y-1)
				r.enqueue(x0, y+1)
			}
			r.enqueue(x1, y-1)
			r.enqueue(x1, y+1)
			r.corrX = x1
			r.stats.Corrections++
			Logger().Debug("render: corrected gap", slog.Int("y", y), slog.Int("x", x1))
			return
		}
		r.corrY++
		r.corrX = 0
	}
}

// fillBlank gives every remaining Blank pixel the value to its left.
func (r *Renderer) fillBlank() {
	for y := 0; y < r.h; y++ {
		last := code(1)
		for x := 0; x < r.w; x++ {
			if c := r.pix.at(x, y); c == codeBlank {
				r.pix.put(x, y, last)
			} else {
				last = c
			}
		}
	}
}

// scanHori walks row y0 over [x0, x0+w) and queues the pixels of row y1
// beside every change of value.
func (r *Renderer) scanHori(x0, y0, y1, w int) {
	a := r.cell(x0, y0)
	for x := x0; x < x0+w-1; x++ {
		b := r.cell(x+1, y0)
		r.compare(a, b, x, y1, x+1, y1)
		a = b
	}
}

// scanVert is scanHori transposed: it walks column x0 and queues column x1.
func (r *Renderer) scanVert(x0, x1, y0, h int) {
	a := r.cell(x0, y0)
	for y := y0; y < y0+h-1; y++ {
		b := r.cell(x0, y+1)
		r.compare(a, b, x1, y, x1, y+1)
		a = b
	}
}
