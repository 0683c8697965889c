//go:build tinygo && !baremetal

package hal

// tinyGoHostHAL serves `tinygo run` on linux and wasm: no pins, no window
// and no terminal input. Frames are rendered into RAM only.
type tinyGoHostHAL struct {
	fb *memFramebuffer
	t  *tinyGoTime
}

func New() HAL {
	return &tinyGoHostHAL{
		fb: newMemFramebuffer(defaultWidth, defaultHeight, false),
		t:  newTinyGoTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return printLogger{} }
func (h *tinyGoHostHAL) LED() LED         { return nil }
func (h *tinyGoHostHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return keyboardInput{kbd: noKeyboard{}} }
func (h *tinyGoHostHAL) Serial() Serial   { return nil }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }
