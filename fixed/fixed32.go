// Package fixed implements the signed fixed-point scalars used for all
// complex-plane coordinates: Q8.24 in 32 bits and Q8.56 in 64 bits.
//
// Both widths keep 8 integer bits. Multiplication floors the exact product,
// so results are bit-identical across platforms.
package fixed

import "math"

// IntBits is the number of integer bits (sign included) in both widths.
const IntBits = 8

// Frac32 is the number of fractional bits in a Fixed32.
const Frac32 = 32 - IntBits

// Fixed32 is a Q8.24 value.
type Fixed32 int32

// One32 is 1.0 in Q8.24.
const One32 Fixed32 = 1 << Frac32

// FromInt32 converts an integer. Values outside [-128, 127] wrap.
func FromInt32(n int) Fixed32 { return Fixed32(int32(n) << Frac32) }

// FromFloat32 converts a float, truncating toward zero. Intended for tools and tests.
func FromFloat32(f float64) Fixed32 { return Fixed32(int32(f * (1 << Frac32))) }

// Exp2Fixed32 returns 2^e. e must be in [-Frac32, IntBits-2].
func Exp2Fixed32(e int) Fixed32 { return Fixed32(int32(1) << (Frac32 + e)) }

func (a Fixed32) Raw() int32 { return int32(a) }

func (a Fixed32) Add(b Fixed32) Fixed32 { return a + b }
func (a Fixed32) Sub(b Fixed32) Fixed32 { return a - b }
func (a Fixed32) Neg() Fixed32          { return -a }

func (a Fixed32) Abs() Fixed32 {
	if a < 0 {
		return -a
	}
	return a
}

// Mul returns floor(a*b) at Q8.24 resolution.
func (a Fixed32) Mul(b Fixed32) Fixed32 {
	return Fixed32((int64(a) * int64(b)) >> Frac32)
}

// MulInt scales by an integer without a fixed-point shift.
func (a Fixed32) MulInt(n int) Fixed32 { return a * Fixed32(n) }

// Square returns a*a; identical to a.Mul(a) for every input.
func (a Fixed32) Square() Fixed32 {
	m := uint64(a.abs32())
	return Fixed32(int64(m*m) >> Frac32)
}

func (a Fixed32) abs32() uint32 {
	if a < 0 {
		return uint32(-int64(a))
	}
	return uint32(a)
}

// Div returns a/b truncated toward zero. b must be non-zero.
func (a Fixed32) Div(b Fixed32) Fixed32 {
	return Fixed32((int64(a) << Frac32) / int64(b))
}

// Inverse returns 1/a. a must be non-zero.
func (a Fixed32) Inverse() Fixed32 {
	return Fixed32((int64(1) << (2 * Frac32)) / int64(a))
}

// IntPart returns floor(a).
func (a Fixed32) IntPart() int { return int(int32(a) >> Frac32) }

// To64 widens to Q8.56 exactly.
func (a Fixed32) To64() Fixed64 { return Fixed64(int64(a) << 32) }

func (a Fixed32) Float64() float64 { return float64(a) / (1 << Frac32) }

// DecimalString formats a into at most bufSize-1 characters; see decimalString.
func (a Fixed32) DecimalString(bufSize, fracDigits int) string {
	return decimalString(int32(a), Frac32, bufSize, fracDigits)
}

func (a Fixed32) String() string {
	return a.DecimalString(math.MaxInt32, 8)
}
