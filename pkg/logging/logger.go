// Package logging records what a diff run did: start and end of the run,
// paths that could not be compared and fatal traversal errors. Records
// go to an optional rotating file and never to stdout or stderr, which
// belong to the diff output.
package logging

import "context"

// Level is the minimum severity a logger records
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields are key/value pairs attached to a record, such as a path or an
// error kind
type Fields map[string]any

// Logger is implemented by FileLogger and NullLogger
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)

	// Error records err under the "error" key when it is non-nil
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger that adds fields to every record. The
	// receiver is left unchanged.
	WithFields(fields Fields) Logger

	Close() error
}
