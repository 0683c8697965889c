package fractal

import "fixbrot/fixed"

// Formula selects an escape-time iteration.
type Formula uint8

const (
	Mandelbrot Formula = iota
	BurningShip
	Celtic
	Buffalo
	PerpBurningShip
	Airship
	SharkFin
	PowerDrill
	Crown
	Super
	CubicMandelbrot
	Cubic01344
	Cubic01417
	Cubic01479
	Cubic01856
	Cubic09601
	Cubic09743
	Feather

	NumFormulas
)

type kernel struct {
	name string
	f32  func(a, b fixed.Fixed32, maxIter int) int
	f64  func(a, b fixed.Fixed64, maxIter int) int
}

var kernels = [NumFormulas]kernel{
	Mandelbrot:      {"Mandelbrot", mandelbrot[fixed.Fixed32], mandelbrot[fixed.Fixed64]},
	BurningShip:     {"Burning Ship", burningShip[fixed.Fixed32], burningShip[fixed.Fixed64]},
	Celtic:          {"Celtic", celtic[fixed.Fixed32], celtic[fixed.Fixed64]},
	Buffalo:         {"Buffalo", buffalo[fixed.Fixed32], buffalo[fixed.Fixed64]},
	PerpBurningShip: {"Perp. Burning Ship", perpBurningShip[fixed.Fixed32], perpBurningShip[fixed.Fixed64]},
	Airship:         {"Airship", airship[fixed.Fixed32], airship[fixed.Fixed64]},
	SharkFin:        {"Shark Fin", sharkFin[fixed.Fixed32], sharkFin[fixed.Fixed64]},
	PowerDrill:      {"Power Drill", powerDrill[fixed.Fixed32], powerDrill[fixed.Fixed64]},
	Crown:           {"Crown", crown[fixed.Fixed32], crown[fixed.Fixed64]},
	Super:           {"Super", super[fixed.Fixed32], super[fixed.Fixed64]},
	CubicMandelbrot: {"Cubic Mandelbrot", cubicMandelbrot[fixed.Fixed32], cubicMandelbrot[fixed.Fixed64]},
	Cubic01344:      {"Cubic #01344", cubic01344[fixed.Fixed32], cubic01344[fixed.Fixed64]},
	Cubic01417:      {"Cubic #01417", cubic01417[fixed.Fixed32], cubic01417[fixed.Fixed64]},
	Cubic01479:      {"Cubic #01479", cubic01479[fixed.Fixed32], cubic01479[fixed.Fixed64]},
	Cubic01856:      {"Cubic #01856", cubic01856[fixed.Fixed32], cubic01856[fixed.Fixed64]},
	Cubic09601:      {"Cubic #09601", cubic09601[fixed.Fixed32], cubic09601[fixed.Fixed64]},
	Cubic09743:      {"Cubic #09743", cubic09743[fixed.Fixed32], cubic09743[fixed.Fixed64]},
	Feather:         {"Feather", feather32, feather64},
}

func (f Formula) Valid() bool { return f < NumFormulas }

func (f Formula) String() string {
	if !f.Valid() {
		return "(Unknown)"
	}
	return kernels[f].name
}

// Next returns the following formula, wrapping around.
func (f Formula) Next() Formula { return (f + 1) % NumFormulas }

// Prev returns the preceding formula, wrapping around.
func (f Formula) Prev() Formula { return (f + NumFormulas - 1) % NumFormulas }

// ParseFormula matches a display name case-insensitively, ignoring spaces,
// dots, dashes and '#'.
func ParseFormula(name string) (Formula, bool) {
	want := foldName(name)
	for f := Formula(0); f < NumFormulas; f++ {
		if foldName(kernels[f].name) == want {
			return f, true
		}
	}
	return 0, false
}

func foldName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '.' || c == '-' || c == '_' || c == '#':
			continue
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// Evaluate returns the escape iteration of pixel p, in [1, s.MaxIter].
//
// Scenes whose step fits Q8.24 run the 32-bit kernel on truncated
// coordinates; others run at Q8.56. Unknown formulas fall back to Mandelbrot.
func Evaluate(s *Scene, p Point) int {
	k := kernels[Mandelbrot]
	if s.Formula.Valid() {
		k = kernels[s.Formula]
	}
	re, im := s.Coord(p)
	if s.Fixed32() {
		return k.f32(re.To32(), im.To32(), s.MaxIter)
	}
	return k.f64(re, im, s.MaxIter)
}
