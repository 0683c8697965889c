package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes the first task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var (
	panicked     atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Pointer[func(PanicInfo)]
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool { return panicked.Load() }

// SetPanicHandler installs the process-wide handler run for the first task
// panic. The handler runs on the panicking task's goroutine and may block
// forever to freeze that task.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicked.Store(true)
		info.Stack = captureStack()
		if fn := panicHandler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
