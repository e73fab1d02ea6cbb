package platform

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "foo/bar.txt", "foo/bar.txt"},
		{"Empty", "", ""},
		{"Newline", "hello\nworld", "hello%0Aworld"},
		{"Tab", "a\tb", "a%09b"},
		{"Delete", "a\x7fb", "a%7Fb"},
		{"Percent", "100%", "100%"},
		{"Space", "a b", "a b"},
		{"NonASCII", "café", "caf%C3%A9"},
		{"InvalidUTF8", "a\xffb", "a%EF%BF%BDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentEncode(tt.input); got != tt.expected {
				t.Errorf("PercentEncode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := ValidatePath("some/dir"); err != nil {
			t.Errorf("ValidatePath() error = %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		var perr *PathError
		if err := ValidatePath(""); !errors.As(err, &perr) {
			t.Errorf("ValidatePath(\"\") error = %v, want *PathError", err)
		}
	})

	t.Run("NulByte", func(t *testing.T) {
		err := ValidatePath("a\x00b")
		var perr *PathError
		if !errors.As(err, &perr) {
			t.Fatalf("ValidatePath() error = %v, want *PathError", err)
		}
		if perr.Path != "a%00b" {
			t.Errorf("Path = %q, want a%%00b", perr.Path)
		}
	})
}

func TestIsTerminal(t *testing.T) {
	t.Run("Buffer", func(t *testing.T) {
		if IsTerminal(&bytes.Buffer{}) {
			t.Error("a buffer is never a terminal")
		}
	})

	t.Run("RegularFile", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "tty-*")
		if err != nil {
			t.Fatalf("failed to create temp file: %v", err)
		}
		defer f.Close()

		if IsTerminal(f) {
			t.Error("a regular file is never a terminal")
		}
		if TerminalWidth(f) != DefaultTerminalWidth {
			t.Errorf("TerminalWidth() = %d, want %d", TerminalWidth(f), DefaultTerminalWidth)
		}
	})
}
