//go:build !tinygo && !cgo

package hal

import "errors"

func RunWindow(func(HAL) func() error) error {
	return errors.New("window mode requires cgo; rebuild with CGO_ENABLED=1 or use -headless")
}

// hostKeyboard is inert without the window backend.
type hostKeyboard struct {
	noKeyboard
}

func newHostKeyboard() *hostKeyboard { return &hostKeyboard{} }

func (*hostKeyboard) poll() {}
