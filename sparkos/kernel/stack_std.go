//go:build !tinygo

package kernel

import "runtime"

// Enough for the panic screen; deeper frames would not fit anyway.
const maxStack = 4 << 10

func captureStack() []byte {
	buf := make([]byte, maxStack)
	return buf[:runtime.Stack(buf, false)]
}
