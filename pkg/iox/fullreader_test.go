package iox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interruptingReader returns EINTR a fixed number of times before every
// real read, and never returns more than chunk bytes at once
type interruptingReader struct {
	src        io.Reader
	interrupts int
	left       int
	chunk      int
}

func (r *interruptingReader) Read(p []byte) (int, error) {
	if r.left > 0 {
		r.left--
		return 0, syscall.EINTR
	}
	r.left = r.interrupts
	if r.chunk > 0 && len(p) > r.chunk {
		p = p[:r.chunk]
	}
	return r.src.Read(p)
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestFullReader_Interrupts(t *testing.T) {
	for _, interrupts := range []int{0, 1, 3, 10} {
		for _, size := range []int{0, 1, 15, 16, 17, 100} {
			t.Run(fmt.Sprintf("interrupts=%d/size=%d", interrupts, size), func(t *testing.T) {
				data := pattern(size)
				r := NewFullReader(&interruptingReader{
					src:        bytes.NewReader(data),
					interrupts: interrupts,
					left:       interrupts,
					chunk:      3,
				})

				var got []byte
				buf := make([]byte, 16)
				for {
					n, err := r.Read(buf)
					got = append(got, buf[:n]...)
					if err == io.EOF {
						assert.Zero(t, n)
						break
					}
					require.NoError(t, err)
					if n < len(buf) {
						// A short count only happens at end of stream
						assert.Equal(t, size, len(got))
						n, err = r.Read(buf)
						assert.Zero(t, n)
						assert.Equal(t, io.EOF, err)
						break
					}
				}
				assert.Equal(t, data, got)
			})
		}
	}
}

func TestFullReader_ExactLength(t *testing.T) {
	data := pattern(32)
	r := NewFullReader(iotest.OneByteReader(bytes.NewReader(data)))

	buf := make([]byte, 32)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.Equal(t, data, buf)

	n, err = r.Read(buf)
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)
}

func TestFullReader_DataErrReader(t *testing.T) {
	data := pattern(10)
	r := NewFullReader(iotest.DataErrReader(bytes.NewReader(data)))

	buf := make([]byte, 64)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, data, buf[:n])
}

func TestFullReader_HardError(t *testing.T) {
	boom := errors.New("boom")
	src := io.MultiReader(bytes.NewReader([]byte("abc")), iotest.ErrReader(boom))
	r := NewFullReader(src)

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, boom)
}

func TestFullReader_WrappedInterrupt(t *testing.T) {
	calls := 0
	src := readerFunc(func(p []byte) (int, error) {
		calls++
		if calls == 1 {
			return 0, fmt.Errorf("read: %w", syscall.EINTR)
		}
		return copy(p, "xy"), io.EOF
	})

	buf := make([]byte, 2)
	n, err := NewFullReader(src).Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "xy", string(buf))
}

func TestFullReader_NoProgress(t *testing.T) {
	src := readerFunc(func(p []byte) (int, error) { return 0, nil })

	n, err := NewFullReader(src).Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
