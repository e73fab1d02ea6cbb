// Package storagetest provides an in-memory storage.Backend for tests, with
// hooks to inject I/O failures on specific paths.
package storagetest

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Op names a backend operation failures can be injected into
type Op string

const (
	OpLstat    Op = "lstat"
	OpReadDir  Op = "readdir"
	OpReadlink Op = "readlink"
	OpOpen     Op = "open"
	OpRead     Op = "read"
)

type entry struct {
	mode   fs.FileMode
	data   []byte
	target string
}

// Memory is an in-memory directory tree
type Memory struct {
	root    string
	entries map[string]*entry
	fails   map[Op]map[string]error
	opened  int
	closed  int
}

// NewMemory creates an empty tree displayed as root
func NewMemory(root string) *Memory {
	return &Memory{
		root:    root,
		entries: map[string]*entry{"": {mode: fs.ModeDir | 0755}},
		fails:   map[Op]map[string]error{},
	}
}

func (m *Memory) addParents(path string) {
	dir := filepath.Dir(path)
	for dir != "." && dir != "" {
		if _, ok := m.entries[dir]; !ok {
			m.entries[dir] = &entry{mode: fs.ModeDir | 0755}
		}
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory and its parents
func (m *Memory) AddDir(path string) *Memory {
	m.addParents(path)
	m.entries[path] = &entry{mode: fs.ModeDir | 0755}
	return m
}

// AddFile adds a regular file and its parent directories
func (m *Memory) AddFile(path string, data []byte) *Memory {
	m.addParents(path)
	m.entries[path] = &entry{mode: 0644, data: data}
	return m
}

// AddSymlink adds a symlink pointing at target
func (m *Memory) AddSymlink(path, target string) *Memory {
	m.addParents(path)
	m.entries[path] = &entry{mode: fs.ModeSymlink | 0777, target: target}
	return m
}

// AddSpecial adds an entry of another type (device, pipe, socket)
func (m *Memory) AddSpecial(path string, mode fs.FileMode) *Memory {
	m.addParents(path)
	m.entries[path] = &entry{mode: mode}
	return m
}

// FailOn makes op fail with err for path
func (m *Memory) FailOn(op Op, path string, err error) *Memory {
	if m.fails[op] == nil {
		m.fails[op] = map[string]error{}
	}
	m.fails[op][path] = err
	return m
}

// OpenFiles returns the number of files opened and not closed yet
func (m *Memory) OpenFiles() int {
	return m.opened - m.closed
}

func (m *Memory) fail(op Op, path string) error {
	if err, ok := m.fails[op][path]; ok {
		return &fs.PathError{Op: string(op), Path: filepath.Join(m.root, path), Err: err}
	}
	return nil
}

func (m *Memory) lookup(op Op, path string) (*entry, error) {
	if err := m.fail(op, path); err != nil {
		return nil, err
	}
	e, ok := m.entries[path]
	if !ok {
		return nil, &fs.PathError{Op: string(op), Path: filepath.Join(m.root, path), Err: fs.ErrNotExist}
	}
	return e, nil
}

// Root returns the display root
func (m *Memory) Root() string {
	return m.root
}

// Lstat returns metadata of path
func (m *Memory) Lstat(path string) (fs.FileInfo, error) {
	e, err := m.lookup(OpLstat, path)
	if err != nil {
		return nil, err
	}
	return fileInfo{name: filepath.Base(path), e: e}, nil
}

// ReadDir returns child names in map order
func (m *Memory) ReadDir(path string) ([]string, error) {
	e, err := m.lookup(OpReadDir, path)
	if err != nil {
		return nil, err
	}
	if !e.mode.IsDir() {
		return nil, &fs.PathError{Op: string(OpReadDir), Path: filepath.Join(m.root, path), Err: fs.ErrInvalid}
	}

	prefix := ""
	if path != "" {
		prefix = path + string(filepath.Separator)
	}
	var names []string
	for p := range m.entries {
		if p == "" || !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if rest != "" && !strings.ContainsRune(rest, filepath.Separator) {
			names = append(names, rest)
		}
	}
	return names, nil
}

// Readlink returns the symlink target
func (m *Memory) Readlink(path string) (string, error) {
	e, err := m.lookup(OpReadlink, path)
	if err != nil {
		return "", err
	}
	if e.mode&fs.ModeSymlink == 0 {
		return "", &fs.PathError{Op: string(OpReadlink), Path: filepath.Join(m.root, path), Err: fs.ErrInvalid}
	}
	return e.target, nil
}

// Open opens a regular file
func (m *Memory) Open(path string) (io.ReadCloser, error) {
	e, err := m.lookup(OpOpen, path)
	if err != nil {
		return nil, err
	}
	m.opened++
	return &file{
		Reader:  bytes.NewReader(e.data),
		readErr: m.fail(OpRead, path),
		onClose: func() { m.closed++ },
	}, nil
}

// Close does nothing
func (m *Memory) Close() error {
	return nil
}

type file struct {
	*bytes.Reader
	readErr error
	onClose func()
}

func (f *file) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.Reader.Read(p)
}

func (f *file) Close() error {
	f.onClose()
	return nil
}

type fileInfo struct {
	name string
	e    *entry
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return int64(len(fi.e.data)) }
func (fi fileInfo) Mode() fs.FileMode  { return fi.e.mode }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.e.mode.IsDir() }
func (fi fileInfo) Sys() any           { return nil }
