package utils

import (
	"bytes"
	"unicode/utf8"
)

// LooksBinary reports whether data is something other than plain UTF-8 text.
// A NUL byte anywhere marks the content binary even when it decodes cleanly.
func LooksBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}
