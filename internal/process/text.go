package process

import (
	"golang.org/x/text/encoding/unicode"
)

// DecodeText decodes captured process output as UTF-8.
// Valid input is returned byte-for-byte; invalid sequences become U+FFFD
// instead of failing the whole capture.
func DecodeText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	// The UTF-8 decoder replaces invalid input and never reports an error.
	out, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(out)
}
