package output

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/durduff/internal/platform"
)

// VT100 sequences used to draw and erase the progress line
const (
	saveCursor    = "\x1b7"
	restoreCursor = "\x1b8"
	clearBelow    = "\x1b[J"
)

const percentKey = "durduff_percent"

// progressTemplate renders e.g. "Files processed: 12/40 (30%)"
const progressTemplate pb.ProgressBarTemplate = `Files processed: {{counters . "%s/%s"}} ({{string . "` + percentKey + `"}}%)`

// ProgressStatus tracks how many outcomes were processed out of an
// estimated total. The estimate never decreases and never falls below the
// processed count.
type ProgressStatus struct {
	Total     int
	Processed int
}

// MarkProcessed counts one more outcome
func (s *ProgressStatus) MarkProcessed() {
	if s.Total == s.Processed {
		s.Total++
	}
	s.Processed++
}

// EstimateMore raises the total if more outcomes are left than estimated
func (s *ProgressStatus) EstimateMore(more int) {
	if total := s.Processed + more; total > s.Total {
		s.Total = total
	}
}

// Percent returns the integer completion percentage
func (s *ProgressStatus) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Processed * 100 / s.Total
}

// ProgressivePrinter buffers output like PlainPrinter and keeps a
// "Files processed" line at the bottom of stderr
type ProgressivePrinter struct {
	stdout *ManualBufWriter
	stderr *ManualBufWriter

	status      ProgressStatus
	lastPercent int

	bar   *pb.ProgressBar
	width int
}

// NewProgressivePrinter creates a printer. totalHint is the initial
// estimate of the number of outcomes, 0 if unknown.
func NewProgressivePrinter(stdout, stderr io.Writer, totalHint int) *ProgressivePrinter {
	width := platform.TerminalWidth(stderr)
	return &ProgressivePrinter{
		stdout: NewManualBufWriter(stdout, 2*BytesPerFlush),
		stderr: NewManualBufWriter(stderr, BytesPerFlush),
		status: ProgressStatus{Total: totalHint},
		bar:    progressTemplate.New(totalHint).SetWidth(width),
		width:  width,
	}
}

// Status returns the current progress
func (p *ProgressivePrinter) Status() ProgressStatus {
	return p.status
}

// Print buffers r and redraws the progress line when output is flushed or
// the percentage changed
func (p *ProgressivePrinter) Print(r Record, remaining int) error {
	if err := writeRecord(p.stdout, p.stderr, r); err != nil {
		return err
	}

	p.status.MarkProcessed()
	p.status.EstimateMore(remaining)
	percent := p.status.Percent()

	if p.stdout.Len() < BytesPerFlush && percent == p.lastPercent && len(r.Stderr) == 0 {
		return nil
	}
	p.lastPercent = percent

	// stderr goes first so the previous progress line is erased before more
	// output appears
	if err := flushAll(p.stderr, p.stdout); err != nil {
		return err
	}

	if _, err := p.stderr.WriteString(saveCursor + p.progressLine(percent)); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := p.stderr.Flush(); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}

	// Erased by the next flush
	if _, err := p.stderr.WriteString(restoreCursor + clearBelow); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return nil
}

// Finish flushes stdout then stderr, which erases the progress line
func (p *ProgressivePrinter) Finish() error {
	return flushAll(p.stdout, p.stderr)
}

// progressLine renders the progress line, cut to the terminal width so
// that it never wraps
func (p *ProgressivePrinter) progressLine(percent int) string {
	p.bar.SetTotal(int64(p.status.Total)).
		SetCurrent(int64(p.status.Processed)).
		Set(percentKey, percent)
	return pb.StripString(p.bar.String(), p.width)
}
