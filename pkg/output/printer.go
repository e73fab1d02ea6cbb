package output

import (
	"fmt"
	"io"
)

// BytesPerFlush is how much stdout output may be buffered before flushing
const BytesPerFlush = 512 << 10

// RecordPrinter writes records as they are produced
type RecordPrinter interface {
	// Print writes one record. It must be called for every outcome,
	// including empty records, so that progress stays accurate.
	// remaining hints how many outcomes are left after this one.
	Print(r Record, remaining int) error

	// Finish flushes everything and clears any progress report
	Finish() error
}

// PlainPrinter buffers output without progress reporting
type PlainPrinter struct {
	stdout *ManualBufWriter
	stderr *ManualBufWriter
}

// NewPlainPrinter creates a printer over stdout and stderr
func NewPlainPrinter(stdout, stderr io.Writer) *PlainPrinter {
	return &PlainPrinter{
		stdout: NewManualBufWriter(stdout, 2*BytesPerFlush),
		stderr: NewManualBufWriter(stderr, BytesPerFlush),
	}
}

// Print buffers r and flushes once enough output accumulated or r reports
// an error
func (p *PlainPrinter) Print(r Record, _ int) error {
	if err := writeRecord(p.stdout, p.stderr, r); err != nil {
		return err
	}

	if p.stdout.Len() >= BytesPerFlush || len(r.Stderr) > 0 {
		return flushAll(p.stdout, p.stderr)
	}
	return nil
}

// Finish flushes stdout then stderr
func (p *PlainPrinter) Finish() error {
	return flushAll(p.stdout, p.stderr)
}

func writeRecord(stdout, stderr *ManualBufWriter, r Record) error {
	if _, err := stdout.Write(r.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := stderr.Write(r.Stderr); err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}
	return nil
}

// flushAll flushes the writers in order, stopping at the first failure
func flushAll(writers ...*ManualBufWriter) error {
	for _, w := range writers {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to flush output: %w", err)
		}
	}
	return nil
}
