package models

import (
	"time"
)

// When decides when terminal-enabled output (color, progress) is produced
type When string

const (
	// WhenNever suppresses terminal-enabled output
	WhenNever When = "never"
	// WhenAlways forces terminal-enabled output
	WhenAlways When = "always"
	// WhenAuto enables it only if the stream is attached to a terminal
	WhenAuto When = "auto"
)

// ParseWhen parses a never/always/auto value
func ParseWhen(s string) (When, error) {
	switch When(s) {
	case WhenNever, WhenAlways, WhenAuto:
		return When(s), nil
	default:
		return "", &ValidationError{Field: "when", Message: "invalid value '" + s + "' (valid: never, always, auto)"}
	}
}

// Resolve returns the effective setting for a stream
func (w When) Resolve(isTerminal bool) bool {
	switch w {
	case WhenAlways:
		return true
	case WhenNever:
		return false
	default:
		return isTerminal
	}
}

// DiffOperation represents one diff run configuration
type DiffOperation struct {
	ID             string
	OldPath        string
	NewPath        string
	Brief          bool
	NulTerminated  bool
	Color          When
	Progress       When
	Precount       bool
	BlockSize      int
	BandwidthLimit int64 // bytes per second, 0 = unlimited
	CreatedAt      time.Time
}

// Validate checks if the operation configuration is valid
func (op *DiffOperation) Validate() error {
	if op.OldPath == "" {
		return &ValidationError{Field: "OldPath", Message: "<old> path is required"}
	}
	if op.NewPath == "" {
		return &ValidationError{Field: "NewPath", Message: "<new> path is required"}
	}
	if op.BlockSize < 1 {
		return &ValidationError{Field: "BlockSize", Message: "block size must be a positive number of bytes"}
	}
	if op.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	for field, w := range map[string]When{"Color": op.Color, "Progress": op.Progress} {
		if _, err := ParseWhen(string(w)); err != nil {
			return &ValidationError{Field: field, Message: "must be never, always or auto"}
		}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
