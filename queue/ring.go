// Package queue provides the bounded ring buffer that carries work items and
// results between the render engine and its workers.
package queue

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// ErrOverflow is returned by Enqueue when the ring holds Depth()-1 items.
var ErrOverflow = errors.New("queue overflow")

// Ring is a fixed-depth single-producer/single-consumer queue.
//
// Only the producer moves the write cursor and only the consumer moves the
// read cursor, so no lock is needed. One slot stays empty to tell a full ring
// from an empty one. Storage is allocated once in New.
type Ring[T any] struct {
	_     [0]func() // prevent accidental copying.
	wr    atomic.Uint32
	rd    atomic.Uint32
	depth uint32
	slots []T
}

// New allocates a ring with the given depth (usable capacity depth-1).
// Depths below 2 are raised to 2.
func New[T any](depth int) *Ring[T] {
	if depth < 2 {
		depth = 2
	}
	return &Ring[T]{depth: uint32(depth), slots: make([]T, depth)}
}

func (r *Ring[T]) next(i uint32) uint32 {
	i++
	if i >= r.depth {
		return 0
	}
	return i
}

// Enqueue appends v, or returns ErrOverflow without touching the ring.
func (r *Ring[T]) Enqueue(v T) error {
	wr := r.wr.Load()
	n := r.next(wr)
	if n == r.rd.Load() {
		return ErrOverflow
	}
	r.slots[wr] = v
	r.wr.Store(n)
	return nil
}

// Send enqueues v, spinning until there is room.
func (r *Ring[T]) Send(v T) {
	for r.Enqueue(v) != nil {
		runtime.Gosched()
	}
}

// Dequeue removes the oldest item. An empty ring returns false.
func (r *Ring[T]) Dequeue() (T, bool) {
	rd := r.rd.Load()
	if rd == r.wr.Load() {
		var zero T
		return zero, false
	}
	v := r.slots[rd]
	r.rd.Store(r.next(rd))
	return v, true
}

// Recv dequeues one item, spinning until one is available.
func (r *Ring[T]) Recv() T {
	for {
		if v, ok := r.Dequeue(); ok {
			return v
		}
		runtime.Gosched()
	}
}

// Peek returns the oldest item without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	rd := r.rd.Load()
	if rd == r.wr.Load() {
		var zero T
		return zero, false
	}
	return r.slots[rd], true
}

// Clear resets both cursors. Only valid while neither side is active.
func (r *Ring[T]) Clear() {
	r.rd.Store(0)
	r.wr.Store(0)
}

// Len returns the number of queued items.
func (r *Ring[T]) Len() int {
	wr, rd := r.wr.Load(), r.rd.Load()
	if wr >= rd {
		return int(wr - rd)
	}
	return int(r.depth - rd + wr)
}

func (r *Ring[T]) Empty() bool { return r.Len() == 0 }
func (r *Ring[T]) Full() bool  { return r.Len() >= int(r.depth)-1 }
func (r *Ring[T]) Depth() int  { return int(r.depth) }

// Cap returns the usable capacity, Depth()-1.
func (r *Ring[T]) Cap() int { return int(r.depth) - 1 }
