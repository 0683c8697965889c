package render

import (
	"testing"

	"fixbrot/fixed"
	"fixbrot/fractal"
)

// testHost evaluates dispatched points inline. lifo reverses the collection
// order; limit bounds the points in flight.
type testHost struct {
	eval     fractal.Evaluator
	scene    fractal.Scene
	inflight []fractal.Point
	limit    int
	lifo     bool
	now      uint64

	started  int
	finished int
	lastErr  error
}

func (h *testHost) OnRenderStart(s *fractal.Scene) {
	h.scene = *s
	h.started++
}

func (h *testHost) OnRenderFinished(err error) {
	h.finished++
	h.lastErr = err
}

func (h *testHost) Dispatch(p fractal.Point) bool {
	if h.limit > 0 && len(h.inflight) >= h.limit {
		return false
	}
	h.inflight = append(h.inflight, p)
	return true
}

func (h *testHost) Collect() (fractal.Cell, bool) {
	if len(h.inflight) == 0 {
		return fractal.Cell{}, false
	}
	var p fractal.Point
	if h.lifo {
		p = h.inflight[len(h.inflight)-1]
		h.inflight = h.inflight[:len(h.inflight)-1]
	} else {
		p = h.inflight[0]
		h.inflight = h.inflight[1:]
	}
	return fractal.Cell{Point: p, Iter: fractal.Result(h.eval.Evaluate(&h.scene, p), h.scene.MaxIter)}, true
}

func (h *testHost) NowMillis() uint64 { return h.now }

// bands colors the plane in diagonal stripes a quarter unit wide. Every
// stripe crosses the canvas edge, so tracing alone finds every boundary.
var bands = fractal.Func(func(s *fractal.Scene, p fractal.Point) int {
	re, im := s.Coord(p)
	return 1 + int((re+im)>>(fixed.Frac64-2)&7)
})

// disk is a filled circle of value 4 on a background of 1. The center is a
// plane coordinate and the radius is in pixels of the scene's step.
type disk struct {
	re, im fixed.Fixed64
	radius int64
}

func (d *disk) Evaluate(s *fractal.Scene, p fractal.Point) int {
	re, im := s.Coord(p)
	dx := (re - d.re).Raw() / s.Step.Raw()
	dy := (im - d.im).Raw() / s.Step.Raw()
	if dx*dx+dy*dy <= d.radius*d.radius {
		return 4
	}
	return 1
}

func newTestRenderer(t *testing.T, w, h int, eval fractal.Evaluator, mod func(*Config)) (*Renderer, *testHost) {
	t.Helper()
	host := &testHost{eval: eval, limit: 64}
	cfg := DefaultConfig(w, h)
	cfg.Evaluator = eval
	if mod != nil {
		mod(&cfg)
	}
	r, err := New(cfg, host)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r, host
}

func drain(t *testing.T, r *Renderer) {
	t.Helper()
	for i := 0; r.Busy(); i++ {
		if i > 1_000_000 {
			t.Fatal("render did not finish")
		}
		if err := r.Service(); err != nil {
			t.Fatalf("Service: %v", err)
		}
	}
}

func snapshot(r *Renderer) []PixelState {
	out := make([]PixelState, 0, r.Width()*r.Height())
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			out = append(out, r.Pixel(x, y))
		}
	}
	return out
}

// reference evaluates every pixel of the current view directly.
func reference(r *Renderer, eval fractal.Evaluator) []PixelState {
	s := r.Scene()
	out := make([]PixelState, 0, r.Width()*r.Height())
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			iter := fractal.Result(eval.Evaluate(&s, fractal.Point{X: int16(x), Y: int16(y)}), s.MaxIter)
			if iter == fractal.Capped {
				out = append(out, PixelState{Kind: ReachedCap})
			} else {
				out = append(out, PixelState{Kind: Finished, Iter: iter})
			}
		}
	}
	return out
}

func assertComplete(t *testing.T, r *Renderer) {
	t.Helper()
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if p := r.Pixel(x, y); !p.Done() {
				t.Fatalf("expected finished pixel at (%d,%d), got %s", x, y, p)
			}
		}
	}
}

func assertEqualStates(t *testing.T, w int, got, want []PixelState) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d pixels, got %d", len(want), len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("pixel (%d,%d): expected %s, got %s", i%w, i/w, want[i], got[i])
		}
	}
}
