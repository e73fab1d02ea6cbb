package output

import (
	"io"
)

// ManualBufWriter collects writes in memory and passes them on only when
// Flush is called, or when a write would overflow its capacity
type ManualBufWriter struct {
	w   io.Writer
	buf []byte
}

// NewManualBufWriter creates a writer buffering up to capacity bytes
func NewManualBufWriter(w io.Writer, capacity int) *ManualBufWriter {
	return &ManualBufWriter{
		w:   w,
		buf: make([]byte, 0, capacity),
	}
}

// Write appends p to the buffer
func (b *ManualBufWriter) Write(p []byte) (int, error) {
	if len(b.buf) > 0 && len(b.buf)+len(p) > cap(b.buf) {
		if err := b.Flush(); err != nil {
			return 0, err
		}
	}
	if len(p) > cap(b.buf) {
		return b.w.Write(p)
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the buffer
func (b *ManualBufWriter) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Len returns the number of buffered bytes
func (b *ManualBufWriter) Len() int {
	return len(b.buf)
}

// Flush writes the buffered bytes to the underlying writer
func (b *ManualBufWriter) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	_, err := b.w.Write(b.buf)
	b.buf = b.buf[:0]
	return err
}
