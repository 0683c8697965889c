package proto

import "testing"

func TestKeyPayload(t *testing.T) {
	code, r, flags, ok := DecodeKeyPayload(KeyPayload(7, 'é', KeyRepeat))
	if !ok || code != 7 || r != 'é' || flags != KeyRepeat {
		t.Fatalf("unexpected decode: %d %q %d %v", code, r, flags, ok)
	}
	if _, _, _, ok := DecodeKeyPayload([]byte{1, 2}); ok {
		t.Fatal("expected short payload to fail")
	}
}

func TestCommandPayload(t *testing.T) {
	id, line, ok := DecodeCommandPayload(CommandPayload(42, "scroll 4 -2"))
	if !ok || id != 42 || line != "scroll 4 -2" {
		t.Fatalf("unexpected decode: %d %q %v", id, line, ok)
	}
	if _, _, ok := DecodeCommandPayload(nil); ok {
		t.Fatal("expected empty payload to fail")
	}
}

func TestErrorMsg(t *testing.T) {
	in := ErrorMsg{Code: ErrBusy, Ref: MsgCommand, RequestID: 9, Detail: "renderer busy"}
	out, ok := DecodeError(in.Payload(128))
	if !ok || out != in {
		t.Fatalf("expected %+v, got %+v (ok=%v)", in, out, ok)
	}
	if got := out.Error(); got != "busy: renderer busy" {
		t.Fatalf("expected \"busy: renderer busy\", got %q", got)
	}

	short, _ := DecodeError(in.Payload(12))
	if short.Detail != "rend" {
		t.Fatalf("expected detail cut to 4 bytes, got %q", short.Detail)
	}
	if _, ok := DecodeError([]byte{1, 0, 4, 0}); ok {
		t.Fatal("expected short payload to fail")
	}
}

func TestLogLinePayload(t *testing.T) {
	if got := string(LogLinePayload("level=INFO msg=ok\n", 64)); got != "level=INFO msg=ok" {
		t.Fatalf("expected terminator stripped, got %q", got)
	}
	// "é" is two bytes; a cut between them backs off to the rune start.
	if got := string(LogLinePayload("abé", 3)); got != "ab" {
		t.Fatalf("expected cut on rune boundary, got %q", got)
	}
}

func TestNames(t *testing.T) {
	for _, tt := range []struct {
		got, want string
	}{
		{MsgCommandResp.String(), "command_resp"},
		{Kind(0).String(), "unknown"},
		{Kind(99).String(), "unknown"},
		{ErrOverflow.String(), "overflow"},
		{ErrCode(42).String(), "unknown"},
	} {
		if tt.got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
