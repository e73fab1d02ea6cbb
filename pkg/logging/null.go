package logging

import "context"

var (
	_ Logger = NullLogger{}
	_ Logger = (*FileLogger)(nil)
)

// NullLogger discards every record. It is what a diff run gets when no
// log file is configured.
type NullLogger struct{}

// NewNullLogger returns a logger that writes nothing
func NewNullLogger() Logger {
	return NullLogger{}
}

func (NullLogger) Debug(context.Context, string, Fields)        {}
func (NullLogger) Info(context.Context, string, Fields)         {}
func (NullLogger) Warn(context.Context, string, Fields)         {}
func (NullLogger) Error(context.Context, string, error, Fields) {}

// WithFields has nothing to attach the fields to
func (n NullLogger) WithFields(Fields) Logger { return n }

func (NullLogger) Close() error { return nil }
