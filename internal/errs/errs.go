// Package errs defines the error kinds shared by the launcher core.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

// Error kinds. Validation and Index errors leave state untouched; Storage
// errors may follow an in-memory mutation that already happened; Launch
// errors are per item and never abort a run.
const (
	KindValidation Kind = "validation"
	KindIndex      Kind = "index"
	KindStorage    Kind = "storage"
	KindLaunch     Kind = "launch"
)

// Sentinels usable with errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrIndex      = &Error{Kind: KindIndex}
	ErrStorage    = &Error{Kind: KindStorage}
	ErrLaunch     = &Error{Kind: KindLaunch}

	// ErrNotFound marks a launch failure caused by a missing path.
	ErrNotFound = errors.New("path does not exist")
)

// Error is the standard error type for the core packages.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "tasklist.add"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Kind) + " error"
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Err }

// Is reports a match when target is an *Error with the same Kind and no
// Op/Msg of its own (i.e. one of the package sentinels).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Validation returns a validation error for op.
func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Index returns an index error for position i in a sequence of length n.
func Index(op string, i, n int) error {
	return &Error{Kind: KindIndex, Op: op, Msg: fmt.Sprintf("index %d out of range [0,%d)", i, n)}
}

// Storage wraps a persistence failure.
func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// Launch wraps a failure to start path.
func Launch(path string, err error) error {
	return &Error{Kind: KindLaunch, Op: "launch", Msg: path, Err: err}
}

// KindOf extracts the Kind from err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
