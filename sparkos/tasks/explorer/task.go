// Package explorer is the interactive fractal viewer task. It owns the
// renderer, feeds it from a worker pool, applies key and command input and
// paints the view into the HAL framebuffer.
package explorer

import (
	"context"
	"errors"
	"log/slog"

	"fixbrot/fractal"
	"fixbrot/hal"
	"fixbrot/internal/script"
	"fixbrot/render"
	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/proto"
	"fixbrot/worker"
)

const (
	// Ticks are 1ms; a frame is roughly 60 Hz.
	frameTicks = 16

	servicePerTick = 4
	maxPending     = 16
)

// Config selects the initial view and how pixels are evaluated.
type Config struct {
	// Workers > 0 evaluates on that many goroutines. Zero evaluates
	// cooperatively from the task loop with a single worker.
	Workers int

	Packed12     bool
	Formula      fractal.Formula
	MaxIter      int
	Palette      render.PaletteKind
	PaletteSlope int
	HUD          bool

	// LED, when set, is lit while a pass is running.
	LED hal.LED

	// Script is applied once after the first pass, one command at a time.
	Script []script.Command

	Log *slog.Logger
}

type Task struct {
	disp hal.Display
	ep   kernel.Capability
	cfg  Config
	log  *slog.Logger

	fb   hal.Framebuffer
	pool *worker.Pool
	host *worker.Host
	r    *render.Renderer
	line []uint16

	hud         *hud
	con         *console
	showHUD     bool
	showConsole bool
	cycling     bool
	dirty       bool

	scroll    scroller
	pending   []action
	lastFrame uint64
	overflows int
}

func New(disp hal.Display, ep kernel.Capability, cfg Config) *Task {
	log := cfg.Log
	if log == nil {
		log = render.Logger()
	}
	return &Task{disp: disp, ep: ep, cfg: cfg, log: log, showHUD: cfg.HUD}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	if err := t.setup(ctx); err != nil {
		t.log.Error("explorer: setup failed", "err", err)
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if t.cfg.Workers > 0 {
		go func() {
			if err := t.pool.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				t.log.Error("explorer: worker pool stopped", "err", err)
			}
		}()
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			t.handleMsg(ctx, msg)
		case now := <-tickCh:
			t.tick(ctx, now)
		}
	}
}

func (t *Task) setup(ctx *kernel.Context) error {
	w, h := t.fb.Width(), t.fb.Height()

	n := max(t.cfg.Workers, 1)
	t.pool = worker.NewPool(n, fractal.Formulas)
	t.host = worker.NewHost(t.pool)
	t.host.Now = ctx.NowTick
	t.host.Finished = t.passFinished
	if led := t.cfg.LED; led != nil {
		t.host.Started = func(*fractal.Scene) { led.High() }
	}

	rc := render.DefaultConfig(w, h)
	rc.Packed12 = t.cfg.Packed12
	rc.Formula = t.cfg.Formula
	rc.Palette = t.cfg.Palette
	if t.cfg.MaxIter > 0 {
		rc.MaxIter = t.cfg.MaxIter
	}
	if t.cfg.PaletteSlope > 0 {
		rc.PaletteSlope = t.cfg.PaletteSlope
	}
	r, err := render.New(rc, t.host)
	if err != nil {
		return err
	}
	t.r = r
	t.line = make([]uint16, w)
	t.hud = newHUD(w)
	t.con = newConsole(w)

	for i, c := range t.cfg.Script {
		t.pending = append(t.pending, action{name: c.String(), apply: c.Apply, last: i == len(t.cfg.Script)-1})
	}
	t.dirty = true
	t.log.Info("explorer: start", "w", w, "h", h, "workers", t.cfg.Workers, "packed12", t.cfg.Packed12)
	return r.Init()
}

func (t *Task) passFinished(err error) {
	if t.cfg.LED != nil {
		t.cfg.LED.Low()
	}
	st := t.r.Stats()
	if err != nil {
		t.log.Warn("explorer: pass failed", "err", err, "ms", st.LastPassMs)
		return
	}
	t.log.Debug("explorer: pass done", "ms", st.LastPassMs, "evaluated", st.Evaluated, "corrections", st.Corrections)
}

func (t *Task) handleMsg(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgKey:
		code, r, flags, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok {
			return
		}
		t.handleKey(hal.KeyCode(code), r, flags)

	case proto.MsgCommand:
		id, line, ok := proto.DecodeCommandPayload(msg.Payload())
		if !ok {
			replyError(ctx, msg.Cap, 0, proto.ErrBadMessage, "bad command payload")
			return
		}
		t.command(ctx, msg.Cap, id, line)

	case proto.MsgLogLine:
		t.con.writeLine(msg.Payload())
	}
}

func (t *Task) handleKey(code hal.KeyCode, r rune, flags proto.KeyFlags) {
	if d := arrow(code); d != 0 {
		switch {
		case flags&proto.KeyRelease != 0:
			t.scroll.release(d)
		case flags&proto.KeyRepeat == 0:
			t.scroll.press(d)
		}
		return
	}
	if flags&proto.KeyRelease != 0 {
		return
	}
	switch {
	case code == hal.KeyF1:
		t.showHUD = !t.showHUD
		t.hud.lines = [2]string{}
		t.dirty = true
		return
	case code == hal.KeyF2:
		t.showConsole = !t.showConsole
		t.dirty = true
		return
	case code == hal.KeyF3:
		st := t.r.Stats()
		t.log.Info("explorer: stats", "passes", st.Passes, "evaluated", st.Evaluated,
			"corrections", st.Corrections, "ms", st.LastPassMs)
		return
	case code == hal.KeyEscape:
		t.showHUD, t.showConsole = false, false
		t.dirty = true
		return
	case r == 'c':
		t.cycling = !t.cycling
		return
	}
	a, ok := bindKey(code, r)
	if !ok {
		return
	}
	t.queue(a)
}

func (t *Task) command(ctx *kernel.Context, reply kernel.Capability, id uint32, line string) {
	cmds, err := script.Parse(line)
	if err != nil {
		replyError(ctx, reply, id, proto.ErrBadMessage, err.Error())
		return
	}
	if len(cmds) == 0 {
		replyOK(ctx, reply, id)
		return
	}
	if len(t.pending)+len(cmds) > maxPending {
		replyError(ctx, reply, id, proto.ErrBusy, "too many pending commands")
		return
	}
	for i, c := range cmds {
		t.pending = append(t.pending, action{
			name:  c.String(),
			apply: c.Apply,
			reply: reply,
			id:    id,
			last:  i == len(cmds)-1,
		})
	}
}

func (t *Task) queue(a action) {
	if len(t.pending) >= maxPending {
		t.log.Warn("explorer: input dropped", "action", a.name)
		return
	}
	t.pending = append(t.pending, a)
}

func (t *Task) tick(ctx *kernel.Context, now uint64) {
	for i := 0; i < servicePerTick; i++ {
		if t.cfg.Workers == 0 {
			t.pool.Service(render.BatchSize)
		}
		if err := t.r.Service(); err != nil {
			t.overflows++
			t.log.Warn("explorer: render", "err", err, "count", t.overflows)
		}
		if !t.r.Busy() {
			break
		}
	}
	t.applyPending(ctx)

	if now-t.lastFrame < frameTicks {
		return
	}
	t.lastFrame = now
	t.scroll.step()
	if err := t.scroll.flush(t.r); err != nil && !errors.Is(err, render.ErrBusy) {
		t.log.Warn("explorer: scroll", "err", err)
	}
	if t.cycling {
		t.r.SetPalettePhase(t.r.PalettePhase() + 1)
	}
	t.frame()
}

// applyPending applies queued actions in order until one reports ErrBusy.
func (t *Task) applyPending(ctx *kernel.Context) {
	for len(t.pending) > 0 {
		a := t.pending[0]
		err := a.apply(t.r)
		if errors.Is(err, render.ErrBusy) {
			return
		}
		t.pending = t.pending[1:]
		if err != nil {
			t.log.Warn("explorer: action failed", "action", a.name, "err", err)
			if a.reply.Valid() {
				replyError(ctx, a.reply, a.id, errCode(err), err.Error())
				t.dropRequest(a.reply, a.id)
			}
			continue
		}
		t.log.Info("explorer: applied", "action", a.name)
		if a.last && a.reply.Valid() {
			replyOK(ctx, a.reply, a.id)
		}
	}
}

// dropRequest discards the remaining actions of a failed command.
func (t *Task) dropRequest(reply kernel.Capability, id uint32) {
	kept := t.pending[:0]
	for _, a := range t.pending {
		if a.reply == reply && a.id == id {
			continue
		}
		kept = append(kept, a)
	}
	t.pending = kept
}

func (t *Task) frame() {
	hudChanged := t.showHUD && t.hud.update(t.r)
	conChanged := t.showConsole && t.con.dirty
	if !t.dirty && !hudChanged && !conChanged && !t.r.RepaintRequested() && !t.r.Animating() {
		return
	}
	t.dirty = false

	buf := t.fb.Buffer()
	stride := t.fb.StrideBytes()
	t.r.PaintStart()
	for y := 0; y < t.fb.Height(); y++ {
		t.r.PaintLine(0, y, t.line)
		hal.PutRGB565Row(buf[y*stride:], t.line)
	}
	t.r.PaintFinished()

	if t.showHUD {
		t.hud.s.blit(t.fb, 0)
	}
	if t.showConsole {
		t.con.s.blit(t.fb, t.fb.Height()-t.con.s.h)
		t.con.dirty = false
	}
	_ = t.fb.Present()
}

func errCode(err error) proto.ErrCode {
	switch {
	case errors.Is(err, render.ErrQueueOverflow):
		return proto.ErrOverflow
	case errors.Is(err, render.ErrBusy):
		return proto.ErrBusy
	}
	return proto.ErrInternal
}

func replyOK(ctx *kernel.Context, to kernel.Capability, id uint32) {
	if !to.Valid() {
		return
	}
	_ = ctx.SendToCapRetry(to, uint16(proto.MsgCommandResp), proto.CommandRespPayload(id), kernel.Capability{}, 4)
}

func replyError(ctx *kernel.Context, to kernel.Capability, id uint32, code proto.ErrCode, detail string) {
	if !to.Valid() {
		return
	}
	e := proto.ErrorMsg{Code: code, Ref: proto.MsgCommand, RequestID: id, Detail: detail}
	_ = ctx.SendToCapRetry(to, uint16(proto.MsgError), e.Payload(kernel.MaxMessageBytes), kernel.Capability{}, 4)
}
