package fractal

import (
	"golang.org/x/exp/constraints"

	"fixbrot/fixed"
)

// scalar is satisfied by fixed.Fixed32 and fixed.Fixed64. Plain integer
// operators act on the raw value: + and - are exact, *n scales by an integer.
type scalar[T any] interface {
	constraints.Signed
	Mul(T) T
	Square() T
	Abs() T
	IntPart() int
}

// Every kernel runs the same loop: iterate while |z|^2 < 4 and the cap is not
// reached, returning the iteration at which the loop stopped.

func mandelbrot[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		y = x.Mul(y)*2 + b
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func burningShip[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		y = (x.Mul(y) * 2).Abs() + b
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func celtic[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		y = x.Mul(y)*2 + b
		x = (xx - yy).Abs() + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func buffalo[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		y = x.Mul(y).Abs()*-2 + b
		x = (xx - yy).Abs() + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func perpBurningShip[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		y = x.Mul(y.Abs())*2 + b
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func airship[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if y >= 0 {
			y = x.Mul(y)*2 + b
			x = xx - yy + a
		} else {
			y = x.Mul(y)*-2 + b
			x = xx + yy + a
		}
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func sharkFin[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if y < 0 {
			yy = -yy
		}
		y = x.Mul(y)*2 + b
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func powerDrill[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if y < 0 {
			yy = -yy
		}
		y = x.Mul(y)*-2 + b
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func crown[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if x < 0 {
			x = -x
			xx = -xx
		}
		y = x.Mul(y)*-2 + b
		x = (xx - yy).Abs() + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func super[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if y < 0 {
			y = -y
			yy = -yy
		}
		y = x.Mul(y)*2 + b
		if x >= 0 {
			xx = -xx
		}
		x = xx - yy + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubicMandelbrot[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		xxx := xx.Mul(x)
		xxy := xx.Mul(y)
		xyy := yy.Mul(x)
		yyy := yy.Mul(y)
		y = xxy*3 - yyy + b
		x = xxx - xyy*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic01344[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if x < 0 {
			xx = -xx
		}
		xxx := xx.Mul(x)
		xxy := xx.Mul(y)
		xyy := yy.Mul(x.Abs())
		yyy := yy.Mul(y)
		y = xxy*3 - yyy + b
		x = xxx - xyy*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic01417[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		xy := x.Abs().Mul(y)
		xxx := xx.Mul(x)
		xxy := xy.Mul(x)
		xyy := xy.Mul(y.Abs())
		yyy := yy.Mul(y)
		y = xxy*3 + yyy + b
		x = -xxx - xyy*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic01479[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if x < 0 {
			xx = -xx
		}
		xxx := xx.Mul(x)
		xxy := xx.Mul(y)
		xyy := x.Abs().Mul(y.Abs()).Mul(y)
		yyy := yy.Mul(y)
		y = xxy*-3 - yyy + b
		x = -xxx + xyy*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic01856[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		if x < 0 {
			xx = -xx
		}
		xxx := xx.Mul(x)
		xxy := xx.Mul(y.Abs())
		xyy := yy.Mul(x.Abs())
		yyy := yy.Mul(y)
		y = xxy*3 - yyy + b
		x = xxx - xyy*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic09601[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		xxx := x.Mul(xx)
		yyy := y.Mul(yy)
		xy := x.Abs().Mul(y)
		yAbs := y.Abs()
		y = (x.Mul(xy)*3 - yyy).Abs() + b
		x = -xxx - xy.Mul(yAbs)*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

func cubic09743[T scalar[T]](a, b T, maxIter int) int {
	var x, y, xx, yy T
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		xxx := x.Mul(xx)
		yyy := y.Mul(yy)
		if x < 0 {
			xx = -xx
		}
		y = (xx.Mul(y.Abs())*-3 + yyy).Abs() + b
		x = -xxx + x.Mul(yy)*3 + a
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

// feather32 iterates z = z^3 / (z^2 + 1) + c.
func feather32(a, b fixed.Fixed32, maxIter int) int {
	var x, y, xx, yy fixed.Fixed32
	iter := 1
	for ; iter < maxIter && (xx+yy).IntPart() < 4; iter++ {
		xxx := xx.Mul(x)
		yyy := yy.Mul(y)
		xyy := x.Mul(yy)
		yxx := y.Mul(xx)
		p := xxx - xyy*3
		q := yxx*3 - yyy
		r := xx + fixed.One32
		s := yy
		dsor := (r.Square() + s.Square()).Inverse()
		x = (p.Mul(r) + q.Mul(s)).Mul(dsor) + a
		y = (q.Mul(r) - p.Mul(s)).Mul(dsor) + b
		xx = x.Square()
		yy = y.Square()
	}
	return iter
}

// feather64 has no Q8.56 kernel; every pixel reports the cap.
func feather64(_, _ fixed.Fixed64, maxIter int) int {
	return maxIter
}
