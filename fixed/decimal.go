package fixed

import "golang.org/x/exp/constraints"

// decimalString renders a fixed-point raw value digit by digit.
//
// The output has a sign, up to three integer digits and, when fracDigits > 0,
// a point followed by exactly fracDigits truncated digits. bufSize counts a
// terminator slot as a C buffer would: if the text needs bufSize or more
// characters the result is the empty string.
func decimalString[T constraints.Signed](raw T, frac uint, bufSize, fracDigits int) string {
	if bufSize <= 1 {
		return ""
	}
	limit := bufSize - 1

	n := 0
	if fracDigits > 0 {
		n = fracDigits
	}
	buf := make([]byte, 0, 5+n)
	put := func(c byte) bool {
		if len(buf) >= limit {
			return false
		}
		buf = append(buf, c)
		return true
	}

	var mag uint64
	if raw < 0 {
		if !put('-') {
			return ""
		}
		// Wraps correctly for the most negative int64.
		mag = uint64(-int64(raw))
	} else {
		mag = uint64(raw)
	}

	ip := mag >> frac
	mask := uint64(1)<<frac - 1
	f := mag & mask

	var digits [3]byte
	nd := 1
	switch {
	case ip >= 100:
		nd = 3
	case ip >= 10:
		nd = 2
	}
	for i := nd - 1; i >= 0; i-- {
		digits[i] = byte('0' + ip%10)
		ip /= 10
	}
	for i := 0; i < nd; i++ {
		if !put(digits[i]) {
			return ""
		}
	}

	if fracDigits <= 0 {
		return string(buf)
	}
	if !put('.') {
		return ""
	}
	for i := 0; i < fracDigits; i++ {
		f *= 10
		d := f >> frac
		if !put(byte('0' + d)) {
			return ""
		}
		f &= mask
	}
	return string(buf)
}
