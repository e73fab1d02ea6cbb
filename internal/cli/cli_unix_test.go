//go:build unix

package cli

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/sdejongh/durduff/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNonfatalErrors(t *testing.T) {
	h := newTreeHelper(t)
	h.file(h.oldDir, "a", "same")
	h.file(h.newDir, "a", "same")
	require.NoError(t, syscall.Mkfifo(filepath.Join(h.oldDir, "fifo"), 0644))
	require.NoError(t, syscall.Mkfifo(filepath.Join(h.newDir, "fifo"), 0644))

	errLine := "! " + platform.PercentEncode(filepath.Join(h.oldDir, "fifo")) + "\n"

	t.Run("TreesSame", func(t *testing.T) {
		res := h.run()
		assert.Equal(t, errLine, res.stdout)
		assert.Equal(t, "^ invalid data\nnomnom: nonfatal errors encountered\n", res.stderr)
		assert.Equal(t, 2, res.code)
	})

	t.Run("TreesDiffer", func(t *testing.T) {
		h.file(h.newDir, "z", "added")

		res := h.run()
		assert.Equal(t, errLine+"+ z\n", res.stdout)
		assert.Equal(t, "^ invalid data\nnomnom: nonfatal errors encountered\n", res.stderr)
		assert.Equal(t, 3, res.code)
	})

	t.Run("BriefKeepsGoingPastErrors", func(t *testing.T) {
		res := h.run("--brief")
		assert.Equal(t, errLine, res.stdout)
		assert.Equal(t, "^ invalid data\ndirectory trees differ\nnomnom: nonfatal errors encountered\n", res.stderr)
		assert.Equal(t, 3, res.code)
	})

	t.Run("ColoredErrorSummary", func(t *testing.T) {
		res := h.run("--color", "always")
		assert.Contains(t, res.stderr, "\x1b[31mnomnom: nonfatal errors encountered\n\x1b[39m")
	})
}

func TestRunFatalTraversalError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	h := newTreeHelper(t)
	h.file(h.oldDir, "locked/a", "a")
	h.file(h.newDir, "locked/a", "a")
	h.file(h.newDir, "b", "b")
	locked := filepath.Join(h.oldDir, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	res := h.run()
	assert.Equal(t, 4, res.code)
	assert.Equal(t, "+ b\n+ locked/a\n", res.stdout)
	assert.Equal(t, "nomnom: fatal error: permission denied: reading directory "+platform.PercentEncode(locked)+"\n", res.stderr)
}
