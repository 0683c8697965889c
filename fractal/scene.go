// Package fractal defines the scene model and the escape-time formulas
// evaluated by the render workers.
package fractal

import "fixbrot/fixed"

// Iteration limits shared by the engine and the workers.
const (
	// MinIter is the lowest accepted iteration cap.
	MinIter = 100

	// DefaultIter is the iteration cap of a fresh scene.
	DefaultIter = 200

	// Capped marks a result that reached the scene's iteration cap.
	Capped uint16 = 1<<16 - 3
)

// Scene is the immutable description of one render pass.
//
// Pixel (x, y) maps to Real + Step*x, Imag + Step*y. Real/Imag are the
// coordinates of pixel (0, 0), not the view center.
type Scene struct {
	Formula Formula
	Real    fixed.Fixed64
	Imag    fixed.Fixed64
	Step    fixed.Fixed64
	MaxIter int
}

// Fixed32 reports whether the scene is evaluated at Q8.24 precision.
func (s *Scene) Fixed32() bool { return s.Step.IsFixed32() }

// Coord returns the complex-plane coordinate of a pixel.
func (s *Scene) Coord(p Point) (re, im fixed.Fixed64) {
	return s.Real + s.Step.MulInt(int(p.X)), s.Imag + s.Step.MulInt(int(p.Y))
}

// Point is a pixel position.
type Point struct {
	X int16
	Y int16
}

// Cell is an evaluated pixel. Iter is in [1, MaxIter) or Capped.
type Cell struct {
	Point
	Iter uint16
}

// Evaluator computes the escape iteration of one pixel. Implementations must
// be pure: the same scene and point always produce the same count.
type Evaluator interface {
	Evaluate(s *Scene, p Point) int
}

// Func adapts an ordinary function to Evaluator.
type Func func(s *Scene, p Point) int

func (f Func) Evaluate(s *Scene, p Point) int { return f(s, p) }

// Formulas evaluates the built-in formula selected by Scene.Formula.
var Formulas Evaluator = Func(Evaluate)

// Result converts a raw count into a Cell value, mapping the cap to Capped.
func Result(n, maxIter int) uint16 {
	if n >= maxIter {
		return Capped
	}
	return uint16(n)
}
