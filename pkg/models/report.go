package models

import (
	"time"
)

// DiffReport represents the results of a diff run
type DiffReport struct {
	// Operation details
	OperationID string
	OldPath     string
	NewPath     string
	Brief       bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// FatalError is set when a traversal error stopped the run
	FatalError string

	// Overall status
	Errors ErrorStatus
	Diff   DiffStatus
	Fatal  bool
}

// Statistics holds diff run counters
type Statistics struct {
	PathsCompared int // Every outcome, including Same
	Same          int
	Added         int
	Deleted       int
	Modified      int
	Errored       int

	// Content bytes read from the old tree during comparison
	BytesCompared int64
}

// Record updates the counters for one verdict
func (s *Statistics) Record(v Verdict) {
	s.PathsCompared++
	switch v {
	case VerdictSame:
		s.Same++
	case VerdictAdded:
		s.Added++
	case VerdictDeleted:
		s.Deleted++
	case VerdictModified:
		s.Modified++
	case VerdictError:
		s.Errored++
	}
}

// ErrorStatus tells whether any non-fatal error happened
type ErrorStatus string

const (
	NoErrors   ErrorStatus = "no_errors"
	SomeErrors ErrorStatus = "some_errors"
)

// DiffStatus tells whether the trees were found to differ
type DiffStatus string

const (
	TreesSame DiffStatus = "same"
	TreesDiff DiffStatus = "differ"
)

// Exit codes
const (
	ExitSame           = 0
	ExitDiff           = 1
	ExitSameWithErrors = 2
	ExitDiffWithErrors = 3
	ExitFatal          = 4
)

// ExitCode combines error and diff status into a process exit code
func ExitCode(errs ErrorStatus, diff DiffStatus) int {
	switch {
	case errs == NoErrors && diff == TreesSame:
		return ExitSame
	case errs == NoErrors && diff == TreesDiff:
		return ExitDiff
	case errs == SomeErrors && diff == TreesSame:
		return ExitSameWithErrors
	default:
		return ExitDiffWithErrors
	}
}

// ExitCode returns the appropriate exit code for the report
func (r *DiffReport) ExitCode() int {
	if r.Fatal {
		return ExitFatal
	}
	return ExitCode(r.Errors, r.Diff)
}

// Status returns a one-word summary of the run
func (r *DiffReport) Status() string {
	if r.Fatal {
		return "failed"
	}
	if r.Diff == TreesDiff {
		return "differ"
	}
	return "same"
}
