package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// FileLogger implements Logger on top of log/slog, writing to a
// size-rotated file
type FileLogger struct {
	out    *rotatingFile
	logger *slog.Logger
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	out, err := openRotatingFile(config)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       slogLevel(config.Level),
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &FileLogger{
		out:    out,
		logger: slog.New(handler),
	}, nil
}

// replaceAttr keeps the timestamp/message keys of the log schema
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339Nano))
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ctx, ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		out:    l.out,
		logger: slog.New(l.logger.Handler().WithAttrs(attrs(nil, fields))),
	}
}

// Close flushes and closes the logger
func (l *FileLogger) Close() error {
	return l.out.Close()
}

// log writes a log entry
func (l *FileLogger) log(ctx context.Context, level Level, msg string, err error, fields Fields) {
	var errAttr []slog.Attr
	if err != nil {
		errAttr = []slog.Attr{slog.String("error", err.Error())}
	}
	l.logger.LogAttrs(ctx, slogLevel(level), msg, attrs(errAttr, fields)...)
}

// attrs appends fields to dst in key order
func attrs(dst []slog.Attr, fields Fields) []slog.Attr {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		dst = append(dst, slog.Any(k, fields[k]))
	}
	return dst
}

// rotatingFile is an append-only file renamed to <path>.1, <path>.2, ...
// once it reaches MaxSize bytes
type rotatingFile struct {
	mu         sync.Mutex
	path       string
	maxSize    int64 // 0 disables rotation
	maxBackups int
	file       *os.File
	size       int64
}

func openRotatingFile(config FileLoggerConfig) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &rotatingFile{
		path:       config.Path,
		maxSize:    config.MaxSize,
		maxBackups: config.MaxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	r.file = file
	r.size = info.Size()
	return nil
}

func (r *rotatingFile) backup(n int) string {
	return r.path + "." + strconv.Itoa(n)
}

// Write appends one record, rotating first if the file is full. Records
// are never split across files.
func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file != nil && r.maxSize > 0 && r.size >= r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	if r.file == nil {
		return 0, os.ErrClosed
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// rotate shifts <path>.N to <path>.N+1, drops whatever falls past
// maxBackups and reopens an empty <path>
func (r *rotatingFile) rotate() error {
	r.file.Close()
	r.file = nil

	if r.maxBackups > 0 {
		os.Remove(r.backup(r.maxBackups))
		for n := r.maxBackups - 1; n >= 1; n-- {
			os.Rename(r.backup(n), r.backup(n+1))
		}
		os.Rename(r.path, r.backup(1))
	} else {
		os.Remove(r.path)
	}

	return r.open()
}

// slogLevel maps a Level to its slog counterpart
func slogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
