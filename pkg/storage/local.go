package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is a filesystem-based storage backend
type Local struct {
	root string
}

// NewLocal creates a new local filesystem backend.
// The root itself is resolved with Stat, so a symlink to a directory is
// accepted as a root; nothing below the root is ever followed.
func NewLocal(root string) (*Local, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotDirectory, root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return &Local{root: root}, nil
}

// Root returns the root path
func (l *Local) Root() string {
	return l.root
}

func (l *Local) full(path string) string {
	if path == "" {
		return l.root
	}
	return filepath.Join(l.root, path)
}

// Lstat returns file metadata without following symlinks
func (l *Local) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(l.full(path))
}

// ReadDir returns the entry names of a directory
func (l *Local) ReadDir(path string) ([]string, error) {
	dir, err := os.Open(l.full(path))
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Readlink returns the target of a symlink
func (l *Local) Readlink(path string) (string, error) {
	return os.Readlink(l.full(path))
}

// Open opens a file for reading
func (l *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(l.full(path))
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
