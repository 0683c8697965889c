package proto

import "encoding/binary"

// CommandPayload encodes a MsgCommand payload: a u32 request ID followed by
// one command line. A reply capability may travel with the message.
func CommandPayload(requestID uint32, line string) []byte {
	buf := make([]byte, 4+len(line))
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	copy(buf[4:], line)
	return buf
}

// DecodeCommandPayload decodes a CommandPayload.
func DecodeCommandPayload(b []byte) (requestID uint32, line string, ok bool) {
	if len(b) < 4 {
		return 0, "", false
	}
	return binary.LittleEndian.Uint32(b[0:4]), string(b[4:]), true
}

// CommandRespPayload encodes a successful MsgCommandResp payload: the request
// ID. Failures are reported with MsgError instead.
func CommandRespPayload(requestID uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, requestID)
	return buf
}

// DecodeCommandRespPayload decodes a CommandRespPayload.
func DecodeCommandRespPayload(b []byte) (requestID uint32, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}
