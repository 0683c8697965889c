package logger

import (
	"fixbrot/hal"
	"fixbrot/sparkos/kernel"
	"fixbrot/sparkos/proto"
)

// Service writes MsgLogLine payloads to the HAL logger. When a tee
// capability is set, every line is also forwarded there (best-effort).
type Service struct {
	log hal.Logger
	ep  kernel.Capability
	tee kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// WithTee forwards every logged line to tee.
func (s *Service) WithTee(tee kernel.Capability) *Service {
	s.tee = tee
	return s
}

func (s *Service) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		line := msg.Payload()
		if s.log != nil {
			s.log.WriteLineBytes(line)
		}
		if s.tee.Valid() {
			_ = ctx.SendToCapResult(s.tee, msg.Kind, line, kernel.Capability{})
		}
	}
}
