package logger

import (
	"bytes"
	"log/slog"
	"sync"

	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line, kernel.MaxMessageBytes), kernel.Capability{})
}

// Writer sends each written line to the logger service. Partial lines are
// held until their newline arrives. Safe for concurrent use.
type Writer struct {
	ctx *kernel.Context
	cap kernel.Capability

	mu      sync.Mutex
	pending []byte
	dropped uint64
}

func NewWriter(ctx *kernel.Context, logCap kernel.Capability) *Writer {
	return &Writer{ctx: ctx, cap: logCap}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		if Log(w.ctx, w.cap, string(w.pending[:i])) != kernel.SendOK {
			w.dropped++
		}
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Dropped is the number of lines lost to a full logger queue.
func (w *Writer) Dropped() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// NewSlog returns a slog.Logger writing text records through the logger
// service. Timestamps are dropped; the host logger adds its own.
func NewSlog(ctx *kernel.Context, logCap kernel.Capability, level slog.Leveler) *slog.Logger {
	h := slog.NewTextHandler(NewWriter(ctx, logCap), &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}
