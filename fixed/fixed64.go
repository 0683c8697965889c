package fixed

import (
	"math"
	"math/bits"
)

// Frac64 is the number of fractional bits in a Fixed64.
const Frac64 = 64 - IntBits

// Fixed64 is a Q8.56 value.
type Fixed64 int64

// One64 is 1.0 in Q8.56.
const One64 Fixed64 = 1 << Frac64

// FromInt64 converts an integer. Values outside [-128, 127] wrap.
func FromInt64(n int) Fixed64 { return Fixed64(int64(n) << Frac64) }

// FromFloat64 converts a float, truncating toward zero. Intended for tools and tests.
func FromFloat64(f float64) Fixed64 {
	// Split so the 53-bit mantissa is not scaled past int64.
	ip := math.Trunc(f)
	fp := f - ip
	return Fixed64(int64(ip)<<Frac64 + int64(fp*(1<<Frac64)))
}

// Exp2 returns 2^e. e must be in [-Frac64, IntBits-2].
func Exp2(e int) Fixed64 { return Fixed64(int64(1) << (Frac64 + e)) }

func (a Fixed64) Raw() int64 { return int64(a) }

func (a Fixed64) Add(b Fixed64) Fixed64 { return a + b }
func (a Fixed64) Sub(b Fixed64) Fixed64 { return a - b }
func (a Fixed64) Neg() Fixed64          { return -a }

func (a Fixed64) Abs() Fixed64 {
	if a < 0 {
		return -a
	}
	return a
}

// Mul returns floor(a*b) at Q8.56 resolution.
//
// The 128-bit product is formed unsigned and corrected for the operand signs,
// then shifted arithmetically.
func (a Fixed64) Mul(b Fixed64) Fixed64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return Fixed64(hi<<IntBits | lo>>Frac64)
}

// MulInt scales by an integer without a fixed-point shift.
func (a Fixed64) MulInt(n int) Fixed64 { return a * Fixed64(n) }

// Square returns a*a; identical to a.Mul(a) for every input.
func (a Fixed64) Square() Fixed64 {
	m := a.abs64()
	hi, lo := bits.Mul64(m, m)
	return Fixed64(hi<<IntBits | lo>>Frac64)
}

func (a Fixed64) abs64() uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

// Div returns a/b truncated toward zero, saturating when the quotient does not
// fit. b must be non-zero.
func (a Fixed64) Div(b Fixed64) Fixed64 {
	ua, ub := a.abs64(), b.abs64()
	hi, lo := ua>>IntBits, ua<<Frac64
	neg := (a < 0) != (b < 0)
	if hi >= ub {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, ub)
	if neg {
		return -Fixed64(q)
	}
	return Fixed64(q)
}

// Inverse returns 1/a. a must be non-zero.
func (a Fixed64) Inverse() Fixed64 { return One64.Div(a) }

// IntPart returns floor(a).
func (a Fixed64) IntPart() int { return int(int64(a) >> Frac64) }

// IsFixed32 reports whether the low 32 bits are zero, i.e. To32 is exact.
func (a Fixed64) IsFixed32() bool { return uint32(a) == 0 }

// To32 truncates to Q8.24 by dropping the low 32 bits.
func (a Fixed64) To32() Fixed32 { return Fixed32(int64(a) >> 32) }

func (a Fixed64) Float64() float64 {
	ip := float64(int64(a) >> Frac64)
	fp := float64(uint64(a)&(1<<Frac64-1)) / (1 << Frac64)
	return ip + fp
}

// DecimalString formats a into at most bufSize-1 characters; see decimalString.
func (a Fixed64) DecimalString(bufSize, fracDigits int) string {
	return decimalString(int64(a), Frac64, bufSize, fracDigits)
}

func (a Fixed64) String() string {
	return a.DecimalString(math.MaxInt32, 16)
}
