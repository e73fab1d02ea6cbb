package storage

import (
	"errors"
	"io"
	"io/fs"
)

// ErrNotDirectory is returned when a tree root does not exist as a directory
var ErrNotDirectory = errors.New("not a directory")

// Backend gives read-only access to one directory tree.
// All paths are relative to the tree root; the empty path is the root itself.
// Implementations include the local filesystem; tests use in-memory fakes.
type Backend interface {
	// Root returns the root path as given by the user, used for display
	Root() string

	// Lstat returns metadata without following a final symlink
	Lstat(path string) (fs.FileInfo, error)

	// ReadDir returns the names of the entries of a directory, unsorted
	ReadDir(path string) ([]string, error)

	// Readlink returns the target of a symlink
	Readlink(path string) (string, error)

	// Open opens a regular file for reading
	Open(path string) (io.ReadCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
