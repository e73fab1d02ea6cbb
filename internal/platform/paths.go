package platform

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// PercentEncode renders a path as printable UTF-8 text.
// Invalid UTF-8 is replaced with U+FFFD, then control bytes and every
// non-ASCII byte are written as %XX.
func PercentEncode(path string) string {
	if !utf8.ValidString(path) {
		path = strings.ToValidUTF8(path, string(utf8.RuneError))
	}

	n := 0
	for i := 0; i < len(path); i++ {
		if shouldEscape(path[i]) {
			n++
		}
	}
	if n == 0 {
		return path
	}

	var b strings.Builder
	b.Grow(len(path) + 2*n)
	for i := 0; i < len(path); i++ {
		c := path[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func shouldEscape(c byte) bool {
	return c < 0x20 || c >= 0x7F
}

// ValidatePath checks if a path is usable as a tree root argument
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return &PathError{Path: PercentEncode(path), Message: "path contains a NUL byte"}
	}
	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
