// Package output renders verdicts as diff lines and writes them to stdout
// and stderr, optionally with a progress report.
package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/sdejongh/durduff/internal/platform"
	"github.com/sdejongh/durduff/pkg/compare"
	"github.com/sdejongh/durduff/pkg/models"
)

// LineStatus is the status printed at the start of a diff line
type LineStatus int

const (
	StatusDeleted LineStatus = iota
	StatusAdded
	StatusModified
	StatusError
	StatusErrorDescription
)

// Indicator returns the one-character prefix of the line
func (s LineStatus) Indicator() byte {
	switch s {
	case StatusDeleted:
		return '-'
	case StatusAdded:
		return '+'
	case StatusModified:
		return '~'
	case StatusError:
		return '!'
	default:
		return '^'
	}
}

// resetForeground restores the default foreground color
const resetForeground color.Attribute = 39

func sgr(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

// ColorCodes holds the escape sequences each line status is printed with
type ColorCodes struct {
	Deleted  string
	Added    string
	Modified string
	Error    string
	Reset    string
}

// NoColor returns empty color codes
func NoColor() ColorCodes {
	return ColorCodes{}
}

// Color returns the VT100 foreground colors used for a colored diff
func Color() ColorCodes {
	return ColorCodes{
		Deleted:  sgr(color.FgYellow),
		Added:    sgr(color.FgGreen),
		Modified: sgr(color.FgBlue),
		Error:    sgr(color.FgRed),
		Reset:    sgr(resetForeground),
	}
}

// Get returns the color code for s
func (c ColorCodes) Get(s LineStatus) string {
	switch s {
	case StatusDeleted:
		return c.Deleted
	case StatusAdded:
		return c.Added
	case StatusModified:
		return c.Modified
	default:
		return c.Error
	}
}

// Record is the output for one verdict. Stdout holds the parseable diff
// line; Stderr holds the "^" description paired with an error line.
type Record struct {
	Stdout []byte
	Stderr []byte
}

// Encoder turns outcomes into records
type Encoder struct {
	Codes         ColorCodes
	NulTerminated bool
}

// Encode renders o. Same outcomes give an empty record, which printers still
// count for progress.
func (e Encoder) Encode(o compare.Outcome) Record {
	var status LineStatus
	switch o.Verdict {
	case models.VerdictSame:
		return Record{}
	case models.VerdictDeleted:
		status = StatusDeleted
	case models.VerdictAdded:
		status = StatusAdded
	case models.VerdictModified:
		status = StatusModified
	default:
		status = StatusError
	}

	// With NUL terminators the path is passed through as raw bytes
	blob := o.Path
	if !e.NulTerminated {
		blob = platform.PercentEncode(o.Path)
	}

	r := Record{Stdout: e.line(status, blob)}
	if status == StatusError {
		r.Stderr = e.line(StatusErrorDescription, o.Kind.Description())
	}
	return r
}

func (e Encoder) line(status LineStatus, blob string) []byte {
	code, reset := e.Codes.Get(status), e.Codes.Reset

	b := make([]byte, 0, len(code)+2+len(blob)+len(reset)+1)
	b = append(b, code...)
	b = append(b, status.Indicator(), ' ')
	b = append(b, blob...)
	b = append(b, reset...)
	if e.NulTerminated {
		b = append(b, 0)
	} else {
		b = append(b, '\n')
	}
	return b
}
