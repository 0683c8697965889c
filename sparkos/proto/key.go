package proto

import "encoding/binary"

// KeyFlags qualify a MsgKey event.
type KeyFlags uint8

const (
	// KeyRepeat marks an auto-repeat of a held key.
	KeyRepeat KeyFlags = 1 << iota
	// KeyRelease marks a key release.
	KeyRelease
)

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: hal.KeyCode
//   - u32: rune (0 for non-text keys)
//   - u8: flags
func KeyPayload(code uint16, r rune, flags KeyFlags) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	binary.LittleEndian.PutUint32(buf[2:6], uint32(r))
	buf[6] = byte(flags)
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (code uint16, r rune, flags KeyFlags, ok bool) {
	if len(b) != 7 {
		return 0, 0, 0, false
	}
	return binary.LittleEndian.Uint16(b[0:2]), rune(binary.LittleEndian.Uint32(b[2:6])), KeyFlags(b[6]), true
}
