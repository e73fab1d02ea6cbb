package models

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrInvalidData is reported for entries that are neither regular files,
// directories nor symbolic links (devices, pipes, sockets)
var ErrInvalidData = errors.New("invalid data")

// Verdict is the outcome of comparing one path across both trees
type Verdict int

const (
	// VerdictSame means the path is identical on both sides
	VerdictSame Verdict = iota
	// VerdictDeleted means the path exists only in the old tree
	VerdictDeleted
	// VerdictAdded means the path exists only in the new tree
	VerdictAdded
	// VerdictModified means the path exists on both sides but differs
	VerdictModified
	// VerdictError means the path could not be compared
	VerdictError
)

// String returns the verdict name
func (v Verdict) String() string {
	switch v {
	case VerdictSame:
		return "same"
	case VerdictDeleted:
		return "deleted"
	case VerdictAdded:
		return "added"
	case VerdictModified:
		return "modified"
	case VerdictError:
		return "error"
	default:
		return "unknown"
	}
}

// IsDifference reports whether the verdict makes the trees differ
func (v Verdict) IsDifference() bool {
	return v == VerdictDeleted || v == VerdictAdded || v == VerdictModified
}

// ErrorKind classifies an I/O failure
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindInterrupted
	KindInvalidData
)

// KindOf classifies err. A nil error is KindOther.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, syscall.EINTR):
		return KindInterrupted
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	default:
		return KindOther
	}
}

// Description returns the human-readable text printed on "^" lines and in
// fatal error messages
func (k ErrorKind) Description() string {
	switch k {
	case KindNotFound:
		return "file not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindInterrupted:
		return "file reading was interrupted"
	case KindInvalidData:
		return "invalid data"
	default:
		return "unexpected error"
	}
}

// String returns a short identifier for logs and reports
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInterrupted:
		return "interrupted"
	case KindInvalidData:
		return "invalid_data"
	default:
		return "other"
	}
}
