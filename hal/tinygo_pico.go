//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

// The Pico target has no panel attached; the explorer renders into RAM and
// is driven over the UART command line.
const (
	picoWidth  = 160
	picoHeight = 120
)

var errNoData = errors.New("uart: no data")

type picoHAL struct {
	uart *machine.UART
	led  *pinLED
	fb   *memFramebuffer
	t    *tinyGoTime
}

// New returns the Pico 2 (RP2350) HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	pin := machine.LED
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &picoHAL{
		uart: uart,
		led:  &pinLED{pin: pin},
		fb:   newMemFramebuffer(picoWidth, picoHeight, false),
		t:    newTinyGoTime(),
	}
}

func (h *picoHAL) Logger() Logger   { return uartLogger{uart: h.uart} }
func (h *picoHAL) LED() LED         { return h.led }
func (h *picoHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *picoHAL) Input() Input     { return keyboardInput{kbd: noKeyboard{}} }
func (h *picoHAL) Serial() Serial   { return uartSerial{uart: h.uart} }
func (h *picoHAL) Time() Time       { return h.t }

type uartLogger struct {
	uart *machine.UART
}

func (l uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.Write([]byte("\r\n"))
}

func (l uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte("\r\n"))
}

// uartSerial reports errNoData instead of blocking when the RX FIFO is empty.
type uartSerial struct {
	uart *machine.UART
}

func (s uartSerial) Read(p []byte) (int, error) {
	if s.uart.Buffered() == 0 {
		return 0, errNoData
	}
	return s.uart.Read(p)
}

func (s uartSerial) Write(p []byte) (int, error) { return s.uart.Write(p) }

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }
