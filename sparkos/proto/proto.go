// Package proto defines the messages exchanged between fixbrot tasks and
// their little-endian payload encodings.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgKey
	// MsgCommand carries one command line; the reply capability travels
	// with the message and receives MsgCommandResp or MsgError.
	MsgCommand
	MsgCommandResp
)

// ErrCode classifies a MsgError.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBusy
	ErrOverflow
	ErrTooLarge
	ErrInternal
)

var kindNames = [...]string{
	MsgLogLine:     "log_line",
	MsgError:       "error",
	MsgKey:         "key",
	MsgCommand:     "command",
	MsgCommandResp: "command_resp",
}

var errNames = [...]string{
	ErrUnknown:    "unknown",
	ErrBadMessage: "bad_message",
	ErrNotFound:   "not_found",
	ErrBusy:       "busy",
	ErrOverflow:   "overflow",
	ErrTooLarge:   "too_large",
	ErrInternal:   "internal",
}

func (k Kind) String() string { return name(kindNames[:], int(k)) }

func (c ErrCode) String() string { return name(errNames[:], int(c)) }

func name(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}
