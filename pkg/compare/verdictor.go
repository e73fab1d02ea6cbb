// Package compare decides, for every path of the merged trees, whether it was
// added, deleted, modified or is the same on both sides.
package compare

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/sdejongh/durduff/pkg/iox"
	"github.com/sdejongh/durduff/pkg/models"
	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/sdejongh/durduff/pkg/stream"
)

// DefaultChunkSize is the read size used for content comparison
const DefaultChunkSize = 512 << 10

// ReaderWrapper wraps content readers (e.g., for rate limiting)
type ReaderWrapper func(io.Reader) io.Reader

// Outcome is the verdict for one path.
// Path is the relative path, except for VerdictError where it is the path of
// the failing side including its root.
type Outcome struct {
	Verdict models.Verdict
	Path    string
	Kind    models.ErrorKind
	Err     error
}

// Verdictor compares entries present in both trees
type Verdictor struct {
	left, right   storage.Backend
	chunkSize     int
	readerWrapper ReaderWrapper

	lbuf, rbuf    []byte
	bytesCompared int64
}

// NewVerdictor creates a verdictor over two trees.
// A chunkSize of 0 selects DefaultChunkSize.
func NewVerdictor(left, right storage.Backend, chunkSize int) (*Verdictor, error) {
	if chunkSize < 0 {
		return nil, &models.ValidationError{Field: "BlockSize", Message: "block size must be a positive number of bytes"}
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return &Verdictor{
		left:      left,
		right:     right,
		chunkSize: chunkSize,
	}, nil
}

// SetReaderWrapper sets a function to wrap content readers
func (v *Verdictor) SetReaderWrapper(wrapper ReaderWrapper) {
	v.readerWrapper = wrapper
}

// ChunkSize returns the read size
func (v *Verdictor) ChunkSize() int {
	return v.chunkSize
}

// BytesCompared returns the number of content bytes read from the left tree
func (v *Verdictor) BytesCompared() int64 {
	return v.bytesCompared
}

// Resolve returns the outcome for one merged path.
// Paths present on one side only are resolved without touching the trees.
func (v *Verdictor) Resolve(t stream.Tagged[string]) Outcome {
	switch t.Origin {
	case models.OriginLeft:
		return Outcome{Verdict: models.VerdictDeleted, Path: t.Item}
	case models.OriginRight:
		return Outcome{Verdict: models.VerdictAdded, Path: t.Item}
	}

	verdict, err := v.compareEntries(t.Item)
	if err != nil {
		return Outcome{
			Verdict: models.VerdictError,
			Path:    filepath.Join(err.side.Root(), t.Item),
			Kind:    models.KindOf(err.err),
			Err:     err.err,
		}
	}
	return Outcome{Verdict: verdict, Path: t.Item}
}

// sideError ties an I/O error to the tree it happened in
type sideError struct {
	side storage.Backend
	err  error
}

type entryType struct {
	dir, regular, symlink bool
}

func typeOf(mode fs.FileMode) entryType {
	return entryType{
		dir:     mode.IsDir(),
		regular: mode.IsRegular(),
		symlink: mode&fs.ModeSymlink != 0,
	}
}

func (v *Verdictor) compareEntries(path string) (models.Verdict, *sideError) {
	linfo, err := v.left.Lstat(path)
	if err != nil {
		return 0, &sideError{v.left, err}
	}
	rinfo, err := v.right.Lstat(path)
	if err != nil {
		return 0, &sideError{v.right, err}
	}

	ltype, rtype := typeOf(linfo.Mode()), typeOf(rinfo.Mode())
	switch {
	case ltype != rtype:
		return models.VerdictModified, nil
	case ltype.symlink:
		return v.compareSymlinks(path)
	case ltype.regular:
		if linfo.Size() != rinfo.Size() {
			return models.VerdictModified, nil
		}
		return v.compareContents(path)
	case ltype.dir:
		return models.VerdictSame, nil
	default:
		return 0, &sideError{v.left, models.ErrInvalidData}
	}
}

func (v *Verdictor) compareSymlinks(path string) (models.Verdict, *sideError) {
	ltarget, err := v.left.Readlink(path)
	if err != nil {
		return 0, &sideError{v.left, err}
	}
	rtarget, err := v.right.Readlink(path)
	if err != nil {
		return 0, &sideError{v.right, err}
	}

	if ltarget != rtarget {
		return models.VerdictModified, nil
	}
	return models.VerdictSame, nil
}

func (v *Verdictor) open(b storage.Backend, path string) (io.ReadCloser, io.Reader, error) {
	f, err := b.Open(path)
	if err != nil {
		return nil, nil, err
	}
	var r io.Reader = f
	if v.readerWrapper != nil {
		r = v.readerWrapper(f)
	}
	return f, iox.NewFullReader(r), nil
}

// compareContents reads both files in lock-step, one chunk at a time
func (v *Verdictor) compareContents(path string) (models.Verdict, *sideError) {
	lfile, lr, err := v.open(v.left, path)
	if err != nil {
		return 0, &sideError{v.left, err}
	}
	defer lfile.Close()

	rfile, rr, err := v.open(v.right, path)
	if err != nil {
		return 0, &sideError{v.right, err}
	}
	defer rfile.Close()

	if v.lbuf == nil {
		v.lbuf = make([]byte, v.chunkSize)
		v.rbuf = make([]byte, v.chunkSize)
	}

	for {
		ln, err := lr.Read(v.lbuf)
		if err != nil && err != io.EOF {
			return 0, &sideError{v.left, err}
		}
		v.bytesCompared += int64(ln)

		rn, err := rr.Read(v.rbuf)
		if err != nil && err != io.EOF {
			return 0, &sideError{v.right, err}
		}

		switch {
		case ln != rn:
			return models.VerdictModified, nil
		case ln == 0:
			return models.VerdictSame, nil
		case !bytes.Equal(v.lbuf[:ln], v.rbuf[:rn]):
			return models.VerdictModified, nil
		}
	}
}
