package kernel

import (
	"bytes"
	"testing"
	"time"
)

type echoTask struct {
	in, out Capability
}

func (t *echoTask) Run(ctx *Context) {
	for {
		msg, ok := ctx.Recv(t.in)
		if !ok {
			return
		}
		ctx.SendToCapResult(t.out, msg.Kind+1, msg.Payload(), Capability{})
	}
}

func TestTaskEcho(t *testing.T) {
	k := New()
	in := k.NewEndpoint(RightSend | RightRecv)
	out := k.NewEndpoint(RightSend | RightRecv)
	k.AddTask(&echoTask{in: in.Restrict(RightRecv), out: out.Restrict(RightSend)})

	ctx := &Context{k: k}
	if res := ctx.SendToCapResult(in.Restrict(RightSend), 7, []byte("hi"), Capability{}); res != SendOK {
		t.Fatalf("expected SendOK, got %s", res)
	}
	ch, _ := ctx.RecvChan(out.Restrict(RightRecv))
	select {
	case msg := <-ch:
		if msg.Kind != 8 || string(msg.Payload()) != "hi" {
			t.Fatalf("unexpected echo kind=%d payload=%q", msg.Kind, msg.Payload())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for echo")
	}
}

func TestSendRejectsBadCaps(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}
	if res := ctx.SendToCapResult(ep.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
	big := make([]byte, MaxMessageBytes+1)
	if res := ctx.SendToCapResult(ep, 1, big, Capability{}); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
	if _, ok := ctx.RecvChan(ep.Restrict(RightSend)); ok {
		t.Fatal("expected RecvChan to require the recv right")
	}
}

func TestEndpointLimit(t *testing.T) {
	k := New()
	for i := 0; i < maxEndpoints; i++ {
		if !k.NewEndpoint(RightRecv).Valid() {
			t.Fatalf("expected endpoint %d", i)
		}
	}
	if k.NewEndpoint(RightRecv).Valid() {
		t.Fatal("expected endpoint allocation to fail")
	}
}

func TestWaitTick(t *testing.T) {
	k := New()
	ctx := &Context{k: k}
	got := make(chan uint64, 1)
	go func() { got <- ctx.WaitTick(0) }()

	k.TickTo(3)
	select {
	case v := <-got:
		if v != 3 {
			t.Fatalf("expected tick 3, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
	}
	k.TickTo(2)
	if ctx.NowTick() != 3 {
		t.Fatalf("expected tick to stay at 3, got %d", ctx.NowTick())
	}
}

func fillMailbox(t *testing.T, ctx *Context, to Capability) {
	t.Helper()
	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte{byte(i)}, Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling slot %d, got %s", i, res)
		}
	}
}

// tickFor advances k once per millisecond until stop is closed.
func tickFor(k *Kernel, stop <-chan struct{}) {
	for seq := uint64(1); ; seq++ {
		select {
		case <-stop:
			return
		case <-time.After(time.Millisecond):
		}
		k.TickTo(seq)
	}
}

func TestSendToCapRetry(t *testing.T) {
	for _, tt := range []struct {
		name  string
		limit int
		drain bool
		want  SendResult
	}{
		{"no retries", 0, false, SendErrQueueFull},
		{"gives up", 3, false, SendErrQueueFull},
		{"drained", 50, true, SendOK},
	} {
		t.Run(tt.name, func(t *testing.T) {
			k := New()
			ep := k.NewEndpoint(RightSend | RightRecv)
			ctx := k.NewContext()
			fillMailbox(t, ctx, ep.Restrict(RightSend))

			stop := make(chan struct{})
			defer close(stop)
			go tickFor(k, stop)

			got := make(chan SendResult, 1)
			go func() { got <- ctx.SendToCapRetry(ep.Restrict(RightSend), 2, nil, Capability{}, tt.limit) }()
			if tt.drain {
				if _, ok := ctx.Recv(ep.Restrict(RightRecv)); !ok {
					t.Fatal("expected a queued message")
				}
			}
			select {
			case res := <-got:
				if res != tt.want {
					t.Fatalf("expected %s, got %s", tt.want, res)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for retry")
			}
		})
	}
}

func TestClosedEndpoint(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	close(k.endpoints[ep.ep].ch)

	ctx := k.NewContext()
	if res := ctx.SendToCapResult(ep, 1, nil, Capability{}); res != SendErrNoEndpoint {
		t.Fatalf("expected SendErrNoEndpoint, got %s", res)
	}
	if _, ok := ctx.Recv(ep); ok {
		t.Fatal("expected Recv to fail on a closed endpoint")
	}
	if _, ok := ctx.TryRecv(ep); ok {
		t.Fatal("expected TryRecv to fail on a closed endpoint")
	}
}

func TestCapabilityTransfer(t *testing.T) {
	k := New()
	req := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()

	if res := ctx.SendToCapResult(req, 1, nil, reply.Restrict(RightSend)); res != SendOK {
		t.Fatalf("expected SendOK, got %s", res)
	}
	msg, _ := ctx.Recv(req)
	if msg.Cap.canRecv() || !msg.Cap.canSend() {
		t.Fatalf("expected a send-only capability, got rights %b", msg.Cap.rights)
	}
	if res := ctx.SendToCapResult(msg.Cap, 2, []byte("ok"), Capability{}); res != SendOK {
		t.Fatalf("expected reply SendOK, got %s", res)
	}
	if got, ok := ctx.TryRecv(reply); !ok || string(got.Payload()) != "ok" {
		t.Fatalf("expected reply \"ok\", got %q (ok=%v)", got.Payload(), ok)
	}
}

func TestMessagePayloadClampsLen(t *testing.T) {
	msg := Message{Len: MaxMessageBytes + 10}
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

type panicTask struct{}

func (panicTask) Run(*Context) { panic("boom") }

func TestTaskPanicInvokesHandler(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })
	defer SetPanicHandler(nil)

	k := New()
	id := k.AddTask(panicTask{})
	select {
	case info := <-got:
		if info.TaskID != id || info.Value != "boom" {
			t.Fatalf("expected task %d value boom, got %d %v", id, info.TaskID, info.Value)
		}
		if !bytes.Contains(info.Stack, []byte("goroutine")) {
			t.Fatalf("expected a goroutine stack, got %q", info.Stack)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
}
