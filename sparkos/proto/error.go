package proto

import (
	"encoding/binary"
	"fmt"
)

// ErrorMsg is the MsgError payload: why the request of kind Ref with the
// given RequestID failed.
//
// Layout (little-endian): u16 code, u16 ref kind, u32 request ID, detail.
type ErrorMsg struct {
	Code      ErrCode
	Ref       Kind
	RequestID uint32
	Detail    string
}

const errorHeader = 8

func (e ErrorMsg) Error() string {
	if e.Detail == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Payload encodes e, truncating Detail so the result fits in limit bytes.
func (e ErrorMsg) Payload(limit int) []byte {
	detail := e.Detail
	if n := limit - errorHeader; len(detail) > n {
		detail = detail[:max(n, 0)]
	}
	buf := make([]byte, errorHeader+len(detail))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(e.Code))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(e.Ref))
	binary.LittleEndian.PutUint32(buf[4:8], e.RequestID)
	copy(buf[errorHeader:], detail)
	return buf
}

func DecodeError(b []byte) (ErrorMsg, bool) {
	if len(b) < errorHeader {
		return ErrorMsg{}, false
	}
	return ErrorMsg{
		Code:      ErrCode(binary.LittleEndian.Uint16(b[0:2])),
		Ref:       Kind(binary.LittleEndian.Uint16(b[2:4])),
		RequestID: binary.LittleEndian.Uint32(b[4:8]),
		Detail:    string(b[errorHeader:]),
	}, true
}
