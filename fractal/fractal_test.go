package fractal

import (
	"testing"

	"fixbrot/fixed"
)

func sceneAt(f Formula, re, im float64, step fixed.Fixed64, maxIter int) *Scene {
	return &Scene{
		Formula: f,
		Real:    fixed.FromFloat64(re),
		Imag:    fixed.FromFloat64(im),
		Step:    step,
		MaxIter: maxIter,
	}
}

func TestMandelbrotKnownPoints(t *testing.T) {
	tests := []struct {
		name   string
		re, im float64
		want   int
	}{
		{"origin", 0, 0, 200},
		{"period2", -1, 0, 200},
		{"two", 2, 0, 2},
		{"half", 0.5, 0, 6},
	}
	for _, tt := range tests {
		for _, step := range []fixed.Fixed64{fixed.Exp2(-8), fixed.Exp2(-40)} {
			s := sceneAt(Mandelbrot, tt.re, tt.im, step, 200)
			if got := Evaluate(s, Point{}); got != tt.want {
				t.Fatalf("%s: Evaluate() at fixed32=%v = %d, want %d", tt.name, s.Fixed32(), got, tt.want)
			}
		}
	}
}

func TestEvaluatePrecisionSelection(t *testing.T) {
	s := sceneAt(Mandelbrot, -0.75, 0.1, fixed.Exp2(-10), 500)
	if !s.Fixed32() {
		t.Fatalf("Fixed32() = false, want true")
	}
	p := Point{X: 3, Y: 5}
	re, im := s.Coord(p)
	if got, want := Evaluate(s, p), mandelbrot(re.To32(), im.To32(), 500); got != want {
		t.Fatalf("Evaluate() = %d, want 32-bit kernel result %d", got, want)
	}

	s.Step = fixed.Exp2(-40)
	re, im = s.Coord(p)
	if got, want := Evaluate(s, p), mandelbrot(re, im, 500); got != want {
		t.Fatalf("Evaluate() = %d, want 64-bit kernel result %d", got, want)
	}
}

func TestAllFormulasBounded(t *testing.T) {
	const maxIter = 150
	for f := Formula(0); f < NumFormulas; f++ {
		for _, step := range []fixed.Fixed64{fixed.Exp2(-5), fixed.Exp2(-36)} {
			s := sceneAt(f, -2, -2, step, maxIter)
			if !s.Fixed32() {
				// Keep the 64-bit grid on the same region.
				s.Step = fixed.Exp2(-5) + 1
			}
			for y := int16(0); y < 128; y += 9 {
				for x := int16(0); x < 128; x += 9 {
					n := Evaluate(s, Point{X: x, Y: y})
					if n < 1 || n > maxIter {
						t.Fatalf("%v: Evaluate(%d,%d) = %d, want [1,%d]", f, x, y, n, maxIter)
					}
				}
			}
		}
	}
}

func TestFeatherWithoutWideKernel(t *testing.T) {
	s := sceneAt(Feather, 1.5, 1.5, fixed.Exp2(-40), 321)
	if got := Evaluate(s, Point{}); got != 321 {
		t.Fatalf("Evaluate() = %d, want 321", got)
	}
	s.Step = fixed.Exp2(-6)
	if got := Evaluate(s, Point{}); got >= 321 {
		t.Fatalf("Evaluate() = %d, want escape below cap", got)
	}
}

func TestEvaluatorIsPure(t *testing.T) {
	s := sceneAt(BurningShip, -1.8, -0.1, fixed.Exp2(-12), 400)
	for i := int16(0); i < 50; i++ {
		p := Point{X: i, Y: i * 2}
		a := Formulas.Evaluate(s, p)
		b := Formulas.Evaluate(s, p)
		if a != b {
			t.Fatalf("Evaluate(%v) = %d then %d", p, a, b)
		}
	}
}

func TestFormulaNames(t *testing.T) {
	if got := BurningShip.String(); got != "Burning Ship" {
		t.Fatalf("String() = %q, want %q", got, "Burning Ship")
	}
	if got := NumFormulas.String(); got != "(Unknown)" {
		t.Fatalf("String() = %q, want (Unknown)", got)
	}
	for f := Formula(0); f < NumFormulas; f++ {
		got, ok := ParseFormula(f.String())
		if !ok || got != f {
			t.Fatalf("ParseFormula(%q) = %v, %v, want %v", f.String(), got, ok, f)
		}
	}
	if got, ok := ParseFormula("cubic-01344"); !ok || got != Cubic01344 {
		t.Fatalf("ParseFormula(cubic-01344) = %v, %v", got, ok)
	}
	if _, ok := ParseFormula("nope"); ok {
		t.Fatalf("ParseFormula(nope) ok = true, want false")
	}
	if got := Feather.Next(); got != Mandelbrot {
		t.Fatalf("Next() = %v, want Mandelbrot", got)
	}
	if got := Mandelbrot.Prev(); got != Feather {
		t.Fatalf("Prev() = %v, want Feather", got)
	}
}

func TestResult(t *testing.T) {
	if got := Result(200, 200); got != Capped {
		t.Fatalf("Result(200, 200) = %d, want Capped", got)
	}
	if got := Result(17, 200); got != 17 {
		t.Fatalf("Result(17, 200) = %d, want 17", got)
	}
}
