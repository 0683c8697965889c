//go:build tinygo

package hal

import "time"

// tinyGoTime runs its own 1ms ticker; ticks are dropped when the kernel
// falls behind.
type tinyGoTime struct {
	ch chan uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go t.run()
	return t
}

func (t *tinyGoTime) run() {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	var seq uint64
	for range ticker.C {
		seq++
		select {
		case t.ch <- seq:
		default:
		}
	}
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }
