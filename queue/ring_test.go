package queue

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

func TestRingDequeueEmpty(t *testing.T) {
	r := New[int](4)

	if _, ok := r.Dequeue(); ok {
		t.Fatalf("Dequeue() ok = true, want false")
	}
	if got := r.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
	if _, ok := r.Peek(); ok {
		t.Fatalf("Peek() ok = true, want false")
	}
}

func TestRingEnqueueFull(t *testing.T) {
	r := New[int](8)

	for i := 0; i < r.Cap(); i++ {
		if err := r.Enqueue(i); err != nil {
			t.Fatalf("Enqueue() err = %v at slot %d, want nil", err, i)
		}
	}
	if !r.Full() {
		t.Fatalf("Full() = false, want true")
	}
	if err := r.Enqueue(99); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Enqueue() err = %v when full, want ErrOverflow", err)
	}
	if got := r.Len(); got != r.Cap() {
		t.Fatalf("Len() = %d after overflow, want %d", got, r.Cap())
	}

	for i := 0; i < r.Cap(); i++ {
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("Dequeue() = %d, %v, want %d, true", v, ok, i)
		}
	}
	if !r.Empty() {
		t.Fatalf("Empty() = false, want true")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := New[int](5)
	next := 0
	want := 0
	for round := 0; round < 20; round++ {
		for i := 0; i < 3; i++ {
			if err := r.Enqueue(next); err != nil {
				t.Fatalf("Enqueue() err = %v", err)
			}
			next++
		}
		if got := r.Len(); got != 3 {
			t.Fatalf("Len() = %d, want 3", got)
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Dequeue()
			if !ok || v != want {
				t.Fatalf("Dequeue() = %d, %v, want %d", v, ok, want)
			}
			want++
		}
	}
}

func TestRingClear(t *testing.T) {
	r := New[int](4)
	_ = r.Enqueue(1)
	_ = r.Enqueue(2)
	_, _ = r.Dequeue()

	r.Clear()
	if !r.Empty() {
		t.Fatalf("Empty() after Clear = false, want true")
	}
	if err := r.Enqueue(7); err != nil {
		t.Fatalf("Enqueue() after Clear err = %v", err)
	}
	if v, _ := r.Peek(); v != 7 {
		t.Fatalf("Peek() = %d, want 7", v)
	}
}

func TestRingMinimumDepth(t *testing.T) {
	r := New[int](0)
	if got := r.Depth(); got != 2 {
		t.Fatalf("Depth() = %d, want 2", got)
	}
	if err := r.Enqueue(1); err != nil {
		t.Fatalf("Enqueue() err = %v", err)
	}
	if err := r.Enqueue(2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Enqueue() err = %v, want ErrOverflow", err)
	}
}

func TestRingConcurrentFIFO(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	const total = 50_000
	r := New[uint32](64)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < total; i++ {
			r.Send(i)
		}
	}()

	for i := uint32(0); i < total; i++ {
		if got := r.Recv(); got != i {
			t.Fatalf("Recv() = %d, want %d", got, i)
		}
	}
	wg.Wait()

	if !r.Empty() {
		t.Fatalf("Empty() = false after draining, want true")
	}
}
