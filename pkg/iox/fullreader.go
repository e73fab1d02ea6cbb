// Package iox holds io helpers used by content comparison.
package iox

import (
	"errors"
	"io"
	"syscall"
)

// MaxEmptyReads bounds consecutive (0, nil) reads before giving up
const MaxEmptyReads = 100

// FullReader fills the whole buffer on every Read unless the source is
// exhausted or fails. Short reads are retried, and EINTR is retried
// transparently, so a short count always means end of stream.
type FullReader struct {
	r io.Reader
}

// NewFullReader wraps r
func NewFullReader(r io.Reader) *FullReader {
	return &FullReader{r: r}
}

// Read reads until p is full, the source returns io.EOF, or a
// non-interrupt error occurs.
//
// At end of stream it returns the bytes read so far with a nil error, or
// (0, io.EOF) if nothing was read. On a hard error it returns the bytes read
// so far together with the error.
func (f *FullReader) Read(p []byte) (int, error) {
	filled := 0
	empty := 0
	for filled < len(p) {
		n, err := f.r.Read(p[filled:])
		filled += n

		switch {
		case err == nil:
		case errors.Is(err, syscall.EINTR):
			continue
		case err == io.EOF:
			if filled == 0 {
				return 0, io.EOF
			}
			return filled, nil
		default:
			return filled, err
		}

		if n == 0 {
			empty++
			if empty >= MaxEmptyReads {
				return filled, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}
	return filled, nil
}
