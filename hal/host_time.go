//go:build !tinygo

package hal

import "time"

const tickBacklog = 1024

// hostTime derives millisecond ticks from the wall clock. step is called
// from the frame loop and emits every tick that has elapsed since the last
// call, dropping the oldest when the backlog would overflow.
type hostTime struct {
	ch    chan uint64
	start time.Time
	seq   uint64
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, tickBacklog)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() {
	if t.start.IsZero() {
		t.start = time.Now()
	}
	due := uint64(time.Since(t.start)/time.Millisecond) + 1
	if due > t.seq+tickBacklog {
		t.seq = due - tickBacklog
	}
	for t.seq < due {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
