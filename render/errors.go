package render

import (
	"errors"
	"fmt"

	"fixbrot/queue"
)

var (
	// ErrBusy is returned by view mutators while a pass is in progress.
	// The state is untouched; retry after the pass finishes.
	ErrBusy = errors.New("render: busy")

	// ErrQueueOverflow is returned when the pending queue cannot accept a
	// point. It wraps queue.ErrOverflow.
	ErrQueueOverflow = fmt.Errorf("render: pending %w", queue.ErrOverflow)
)
