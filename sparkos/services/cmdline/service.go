// Package cmdline reads command lines from the HAL serial port and forwards
// them to the explorer as MsgCommand requests, printing each outcome.
package cmdline

import (
	"errors"
	"fmt"
	"io"

	"fixbrot/hal"
	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/proto"
)

const (
	prompt = "> "

	// Room for the request ID in front of the line.
	maxLine = kernel.MaxMessageBytes - 4

	sendRetries = 100
)

type Service struct {
	serial  hal.Serial
	to      kernel.Capability
	replyEP kernel.Capability

	line   []byte
	nextID uint32
}

// New creates the service. to is the explorer endpoint; replyEP is an
// endpoint owned by the service with send and receive rights.
func New(serial hal.Serial, to, replyEP kernel.Capability) *Service {
	return &Service{serial: serial, to: to, replyEP: replyEP}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.serial == nil || !s.to.Valid() {
		return
	}
	replies, ok := ctx.RecvChan(s.replyEP.Restrict(kernel.RightRecv))
	if !ok {
		return
	}

	s.print(prompt)
	buf := make([]byte, 64)
	for {
		n, err := s.serial.Read(buf)
		for _, b := range buf[:n] {
			if line, ok := s.feed(b); ok {
				s.submit(ctx, replies, line)
				s.print(prompt)
			}
		}
		switch {
		case errors.Is(err, io.EOF):
			if len(s.line) > 0 {
				s.submit(ctx, replies, string(s.line))
			}
			return
		case err != nil && n == 0:
			ctx.BlockOnTick()
		}
	}
}

// feed adds one input byte and returns a completed, non-empty line.
func (s *Service) feed(b byte) (string, bool) {
	switch {
	case b == '\r' || b == '\n':
		if len(s.line) == 0 {
			return "", false
		}
		line := string(s.line)
		s.line = s.line[:0]
		return line, true
	case b == 0x08 || b == 0x7F:
		if len(s.line) > 0 {
			s.line = s.line[:len(s.line)-1]
		}
	case b >= 0x20 && len(s.line) < maxLine:
		s.line = append(s.line, b)
	}
	return "", false
}

// submit sends line and waits for the explorer's answer to it. Answers to
// earlier requests are skipped.
func (s *Service) submit(ctx *kernel.Context, replies <-chan kernel.Message, line string) {
	s.nextID++
	id := s.nextID
	res := ctx.SendToCapRetry(s.to, uint16(proto.MsgCommand), proto.CommandPayload(id, line),
		s.replyEP.Restrict(kernel.RightSend), sendRetries)
	if res != kernel.SendOK {
		s.print(fmt.Sprintf("error: %s\n", res))
		return
	}
	for msg := range replies {
		switch proto.Kind(msg.Kind) {
		case proto.MsgCommandResp:
			if rid, ok := proto.DecodeCommandRespPayload(msg.Payload()); ok && rid == id {
				s.print("ok\n")
				return
			}
		case proto.MsgError:
			if e, ok := proto.DecodeError(msg.Payload()); ok && e.RequestID == id {
				s.print("error: " + e.Error() + "\n")
				return
			}
		}
	}
}

func (s *Service) print(str string) {
	_, _ = io.WriteString(s.serial, str)
}
