package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/sdejongh/durduff/pkg/storage/storagetest"
	"github.com/sdejongh/durduff/pkg/stream"
)

func p(parts ...string) string {
	return filepath.Join(parts...)
}

func TestComparePaths(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"z", p("a", "a"), -1},
		{p("a", "a"), "z", 1},
		{p("a", "x"), p("a-b", "y"), -1},
		{p("a-b", "y"), p("a", "x"), 1},
		{p("foo", "a"), p("foo", "b"), -1},
		{"ab", "abc", -1},
		{"B", "a", -1},
		{"", "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparePaths(tt.a, tt.b))
		})
	}
}

func collect(t *testing.T, w *Walker) ([]string, error) {
	t.Helper()
	var paths []string
	var err error
	for {
		r, ok := w.Next()
		if !ok {
			return paths, err
		}
		if r.Err != nil {
			require.NoError(t, err, "only one error may be yielded")
			err = r.Err
			continue
		}
		require.NoError(t, err, "no path may follow the error")
		paths = append(paths, r.Value)
	}
}

func TestWalker_Order(t *testing.T) {
	mem := storagetest.NewMemory("old").
		AddFile("b", nil).
		AddFile("a", nil).
		AddFile(p("foo", "a"), nil).
		AddFile(p("foo", "bar", "deep"), nil).
		AddFile(p("a-b", "y"), nil).
		AddDir(p("a-c")).
		AddFile(p("zz", "x"), nil).
		AddSymlink("link", "foo")

	paths, err := collect(t, New(mem))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a",
		"a-b",
		"a-c",
		"b",
		"foo",
		"link",
		"zz",
		p("a-b", "y"),
		p("foo", "a"),
		p("foo", "bar"),
		p("zz", "x"),
		p("foo", "bar", "deep"),
	}, paths)

	assert.True(t, slices.IsSortedFunc(paths, ComparePaths), "walk order must match ComparePaths")
}

func TestWalker_EmptyRoot(t *testing.T) {
	w := New(storagetest.NewMemory("empty"))
	paths, err := collect(t, w)
	assert.NoError(t, err)
	assert.Empty(t, paths)

	_, ok := w.Next()
	assert.False(t, ok)
}

func TestWalker_SymlinkIsLeaf(t *testing.T) {
	mem := storagetest.NewMemory("root").
		AddFile(p("dir", "file"), nil).
		AddSymlink("loop", ".")

	paths, err := collect(t, New(mem))
	require.NoError(t, err)
	assert.Equal(t, []string{"dir", "loop", p("dir", "file")}, paths)
}

func TestWalker_Remaining(t *testing.T) {
	mem := storagetest.NewMemory("root").
		AddFile("a", nil).
		AddFile(p("d", "x"), nil).
		AddFile(p("d", "y"), nil)

	w := New(mem)
	assert.Equal(t, 0, w.Remaining(), "nothing queued before the first call")

	r, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, "a", r.Value)
	assert.Equal(t, 1, w.Remaining())

	r, ok = w.Next()
	require.True(t, ok)
	assert.Equal(t, "d", r.Value)
	assert.Equal(t, 2, w.Remaining())
}

func TestWalker_ReadDirErrorIsLatched(t *testing.T) {
	mem := storagetest.NewMemory("old").
		AddFile("a", nil).
		AddFile(p("bad", "hidden"), nil).
		AddFile("c", nil).
		AddFile(p("good", "x"), nil).
		FailOn(storagetest.OpReadDir, "bad", syscall.EACCES)

	w := New(mem)

	r, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, "a", r.Value)

	// The failing directory itself is still yielded
	r, ok = w.Next()
	require.True(t, ok)
	require.NoError(t, r.Err)
	assert.Equal(t, "bad", r.Value)
	assert.Equal(t, 0, w.Remaining())

	r, ok = w.Next()
	require.True(t, ok)
	require.Error(t, r.Err)
	assert.Equal(t, "reading directory "+p("old", "bad"), r.Err.Error())
	assert.ErrorIs(t, r.Err, fs.ErrPermission)

	var terr *TraversalError
	require.ErrorAs(t, r.Err, &terr)
	assert.Equal(t, p("old", "bad"), terr.Dir)

	_, ok = w.Next()
	assert.False(t, ok)
}

func TestWalker_RootListingFails(t *testing.T) {
	mem := storagetest.NewMemory("root").
		AddFile("a", nil).
		FailOn(storagetest.OpReadDir, "", syscall.EACCES)

	paths, err := collect(t, New(mem))
	assert.Empty(t, paths)
	require.Error(t, err)
	assert.Equal(t, "reading directory root", err.Error())
}

func TestWalker_LstatErrorIsLatched(t *testing.T) {
	mem := storagetest.NewMemory("root").
		AddFile("a", nil).
		AddFile("b", nil).
		FailOn(storagetest.OpLstat, "a", errors.New("io error"))

	paths, err := collect(t, New(mem))
	assert.Equal(t, []string{"a"}, paths)
	assert.Error(t, err)
}

func TestWalker_EscapesErrorPath(t *testing.T) {
	mem := storagetest.NewMemory("old").
		AddDir("new\nline").
		FailOn(storagetest.OpReadDir, "new\nline", syscall.EACCES)

	_, err := collect(t, New(mem))
	require.Error(t, err)
	assert.Equal(t, "reading directory "+p("old", "new%0Aline"), err.Error())
}

func TestWalker_OkIterAdapter(t *testing.T) {
	mem := storagetest.NewMemory("old").
		AddFile("a", nil).
		AddDir("bad").
		FailOn(storagetest.OpReadDir, "bad", syscall.EACCES)

	ok := stream.NewOkIter[string](New(mem))
	assert.Equal(t, []string{"a", "bad"}, stream.Collect[string](ok))
	assert.ErrorIs(t, ok.Err(), fs.ErrPermission)
}

func TestWalker_LocalFilesystem(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"b", p("foo", "a"), p("foo", "sub", "z"), "a"} {
		full := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(f), 0644))
	}

	local, err := storage.NewLocal(root)
	require.NoError(t, err)

	paths, err := collect(t, New(local))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "foo", p("foo", "a"), p("foo", "sub"), p("foo", "sub", "z")}, paths)
}
