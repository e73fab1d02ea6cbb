package walk

import (
	"path/filepath"
	"slices"

	"github.com/sdejongh/durduff/internal/platform"
	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/sdejongh/durduff/pkg/stream"
)

// dirHint is the expected size of a large directory listing
const dirHint = 4 << 10

// TraversalError is returned when a directory cannot be listed.
// The message names the directory only; the cause is available through
// errors.Is/errors.As.
type TraversalError struct {
	Dir string // percent-encoded, including the tree root
	Err error
}

func (e *TraversalError) Error() string {
	return "reading directory " + e.Dir
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// Walker lists every entry under a root in ComparePaths order.
//
// It keeps a FIFO queue of pending paths. When a directory is taken from the
// queue, its children are listed, sorted by name and appended to the queue,
// which yields the whole tree breadth first with siblings sorted. Symlinks
// are never expanded. The root itself is not yielded.
//
// If listing a directory fails, the entry taken from the queue is still
// yielded; the next call yields the error and the walker is exhausted.
type Walker struct {
	backend storage.Backend
	queue   []string
	head    int
	err     error
	started bool
	done    bool
}

// New creates a walker over b
func New(b storage.Backend) *Walker {
	return &Walker{backend: b}
}

// Next returns the next relative path, or the traversal error
func (w *Walker) Next() (stream.Result[string], bool) {
	if !w.started {
		w.started = true
		w.expand("")
	}

	if w.err != nil {
		err := w.err
		w.err = nil
		w.done = true
		return stream.Fail[string](err), true
	}

	if w.done || w.head == len(w.queue) {
		w.done = true
		w.queue, w.head = nil, 0
		return stream.Result[string]{}, false
	}

	p := w.queue[w.head]
	w.queue[w.head] = ""
	w.head++
	w.compact()
	w.expand(p)

	return stream.Ok(p), true
}

// Remaining returns the number of queued paths
func (w *Walker) Remaining() int {
	if w.err != nil || w.done {
		return 0
	}
	return len(w.queue) - w.head
}

// expand queues the children of dir if it is a directory
func (w *Walker) expand(dir string) {
	if err := w.tryExpand(dir); err != nil {
		w.err = &TraversalError{
			Dir: platform.PercentEncode(filepath.Join(w.backend.Root(), dir)),
			Err: err,
		}
		w.queue, w.head = nil, 0
	}
}

func (w *Walker) tryExpand(dir string) error {
	// The root was validated as a directory when the backend was created
	if dir != "" {
		info, err := w.backend.Lstat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
	}

	names, err := w.backend.ReadDir(dir)
	if err != nil {
		return err
	}

	slices.Sort(names)
	if w.queue == nil {
		w.queue = make([]string, 0, max(len(names), dirHint))
	}
	for _, name := range names {
		w.queue = append(w.queue, filepath.Join(dir, name))
	}
	return nil
}

// compact drops consumed entries once they make up most of the queue
func (w *Walker) compact() {
	if w.head >= dirHint && w.head*2 >= len(w.queue) {
		n := copy(w.queue, w.queue[w.head:])
		clear(w.queue[n:])
		w.queue = w.queue[:n]
		w.head = 0
	}
}
