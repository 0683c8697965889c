package proto

import (
	"strings"
	"unicode/utf8"
)

// LogLinePayload encodes a MsgLogLine payload: the line without its
// terminator, cut to at most limit bytes on a rune boundary.
func LogLinePayload(line string, limit int) []byte {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > limit {
		n := limit
		for n > 0 && !utf8.RuneStart(line[n]) {
			n--
		}
		line = line[:n]
	}
	return []byte(line)
}
