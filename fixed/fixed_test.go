package fixed

import (
	"math"
	"testing"
)

func TestSquareMatchesMul64(t *testing.T) {
	vals := []Fixed64{
		0, 1, -1,
		One64, -One64,
		One64 / 3, -One64 / 3,
		FromFloat64(1.75), FromFloat64(-1.75),
		FromFloat64(3.999), FromFloat64(-3.999),
		FromFloat64(11.3), FromFloat64(-11.3),
		math.MaxInt64 >> 4, math.MinInt64 >> 4,
		0x0123456789abcdef, -0x0123456789abcdef,
	}
	for _, v := range vals {
		if got, want := v.Square(), v.Mul(v); got != want {
			t.Fatalf("(%d).Square() = %d, want %d", v, got, want)
		}
	}
}

func TestSquareMatchesMul32(t *testing.T) {
	for raw := int64(math.MinInt32 + 1); raw <= math.MaxInt32; raw += 7919 * 13 {
		v := Fixed32(raw)
		if got, want := v.Square(), v.Mul(v); got != want {
			t.Fatalf("(%d).Square() = %d, want %d", v, got, want)
		}
	}
}

func TestMul64Floors(t *testing.T) {
	tests := []struct {
		a, b Fixed64
		want Fixed64
	}{
		{FromInt64(2), FromInt64(3), FromInt64(6)},
		{FromInt64(-2), FromInt64(3), FromInt64(-6)},
		{FromInt64(-2), FromInt64(-3), FromInt64(6)},
		{One64 / 2, One64 / 2, One64 / 4},
		// 1 ulp * 0.5 = 0.5 ulp floors to 0; -1 ulp * 0.5 floors to -1 ulp.
		{1, One64 / 2, 0},
		{-1, One64 / 2, -1},
		{1, -One64 / 2, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Mul(tt.b); got != tt.want {
			t.Fatalf("(%d).Mul(%d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMul32Floors(t *testing.T) {
	if got := Fixed32(-1).Mul(One32 / 2); got != -1 {
		t.Fatalf("Mul() = %d, want -1", got)
	}
	if got := Fixed32(1).Mul(One32 / 2); got != 0 {
		t.Fatalf("Mul() = %d, want 0", got)
	}
	if got := FromInt32(-3).Mul(FromInt32(5)); got != FromInt32(-15) {
		t.Fatalf("Mul() = %d, want %d", got, FromInt32(-15))
	}
}

func TestMulAgreesAcrossWidths(t *testing.T) {
	vals := []float64{0.5, -0.5, 1.25, -1.9921875, 3.0, -2.75}
	for _, a := range vals {
		for _, b := range vals {
			x, y := FromFloat32(a), FromFloat32(b)
			got := x.To64().Mul(y.To64())
			want := x.Mul(y).To64()
			if got != want {
				t.Fatalf("%v*%v: 64-bit = %v, 32-bit = %v", a, b, got, want)
			}
		}
	}
}

func TestIsFixed32(t *testing.T) {
	tests := []struct {
		v    Fixed64
		want bool
	}{
		{0, true},
		{One64, true},
		{Exp2(-24), true},
		{Exp2(-25), false},
		{1, false},
		{-1 << 32, true},
		{(-1 << 32) | 1, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFixed32(); got != tt.want {
			t.Fatalf("(%#x).IsFixed32() = %v, want %v", uint64(tt.v), got, tt.want)
		}
	}
}

func TestTruncatingRoundTrip(t *testing.T) {
	vals := []Fixed64{0x0123456789abcdef, -0x0123456789abcdef, One64 + 12345, -1}
	for _, v := range vals {
		got := v.To32().To64()
		want := Fixed64(int64(v) &^ 0xFFFFFFFF)
		if got != want {
			t.Fatalf("(%#x) round trip = %#x, want %#x", uint64(v), uint64(got), uint64(want))
		}
		if !got.IsFixed32() {
			t.Fatalf("round trip result %#x is not fixed32", uint64(got))
		}
	}
}

func TestDivAndInverse(t *testing.T) {
	if got := FromInt64(3).Div(FromInt64(2)); got != FromFloat64(1.5) {
		t.Fatalf("Div() = %v, want 1.5", got)
	}
	if got := FromInt64(-3).Div(FromInt64(2)); got != FromFloat64(-1.5) {
		t.Fatalf("Div() = %v, want -1.5", got)
	}
	if got := FromInt64(4).Inverse(); got != One64/4 {
		t.Fatalf("Inverse() = %v, want 0.25", got)
	}
	if got := FromInt64(100).Div(One64 / 4); got != math.MaxInt64 {
		t.Fatalf("Div() overflow = %v, want saturation", got)
	}
	if got := FromInt32(4).Inverse(); got != One32/4 {
		t.Fatalf("Inverse() = %v, want 0.25", got)
	}
	if got := FromInt32(-6).Div(FromInt32(4)); got != FromFloat32(-1.5) {
		t.Fatalf("Div() = %v, want -1.5", got)
	}
}

func TestIntPartFloors(t *testing.T) {
	if got := FromFloat64(-0.25).IntPart(); got != -1 {
		t.Fatalf("IntPart() = %d, want -1", got)
	}
	if got := FromFloat64(3.75).IntPart(); got != 3 {
		t.Fatalf("IntPart() = %d, want 3", got)
	}
	if got := FromFloat32(-2.5).IntPart(); got != -3 {
		t.Fatalf("IntPart() = %d, want -3", got)
	}
}

func TestExp2(t *testing.T) {
	if got := Exp2(0); got != One64 {
		t.Fatalf("Exp2(0) = %v, want 1", got)
	}
	if got := Exp2(-3); got != One64/8 {
		t.Fatalf("Exp2(-3) = %v, want 0.125", got)
	}
	if got := Exp2Fixed32(2); got != FromInt32(4) {
		t.Fatalf("Exp2Fixed32(2) = %v, want 4", got)
	}
}

func TestDecimalString(t *testing.T) {
	tests := []struct {
		v          Fixed64
		bufSize    int
		fracDigits int
		want       string
	}{
		{FromFloat64(-0.5), 32, 4, "-0.5000"},
		{FromFloat64(1.25), 32, 2, "1.25"},
		{FromFloat64(1.99), 32, 1, "1.9"},
		{FromFloat64(-1.99), 32, 1, "-1.9"},
		{FromInt64(127), 32, 0, "127"},
		{FromInt64(-12), 32, -1, "-12"},
		{math.MinInt64, 32, 0, "-128"},
		{FromFloat64(0.125), 6, 3, "0.125"},
		{FromFloat64(0.125), 5, 3, ""},
		{FromFloat64(-3), 2, 0, ""},
		{0, 1, 0, ""},
	}
	for _, tt := range tests {
		if got := tt.v.DecimalString(tt.bufSize, tt.fracDigits); got != tt.want {
			t.Fatalf("(%v).DecimalString(%d, %d) = %q, want %q", tt.v.Float64(), tt.bufSize, tt.fracDigits, got, tt.want)
		}
	}
	if got := FromFloat32(-2.75).DecimalString(16, 3); got != "-2.750" {
		t.Fatalf("Fixed32 DecimalString() = %q, want %q", got, "-2.750")
	}
}

func TestFloatConversion(t *testing.T) {
	for _, f := range []float64{0, 0.5, -0.5, 1.0 / 3, -7.125, 100.0625} {
		if got := FromFloat64(f).Float64(); math.Abs(got-f) > 1e-15 {
			t.Fatalf("FromFloat64(%v).Float64() = %v", f, got)
		}
	}
}
