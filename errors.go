package filesource

import (
	"errors"
	"fmt"
)

// ErrIO is the kind of a RefreshError caused by a failure to read the backing file.
var ErrIO = errors.New("error reading config from file")

// ErrParse is the kind of a RefreshError caused by the parse function rejecting the file contents.
var ErrParse = errors.New("error parsing string value to type")

// ErrNoValue is the kind of a RefreshError returned when the backing file of a required source does not exist.
var ErrNoValue = errors.New("no value given/file found")

// ErrNoValuePresent is returned by Required.Value when no value is cached after a successful refresh.
var ErrNoValuePresent = errors.New("no value given for required config variable")

// ErrInvalidText is returned, wrapped in an ErrIO refresh error, when the file is not valid UTF-8.
var ErrInvalidText = errors.New("file contents are not valid UTF-8")

// RefreshError describes a failed refresh. The cache is never modified by a failed refresh.
//
// Kind is one of ErrIO, ErrParse or ErrNoValue. Err is the underlying cause,
// for example an *fs.PathError or the parse function's own error, and is nil for ErrNoValue.
// Both are reachable through errors.Is and errors.As.
type RefreshError struct {
	Kind error
	Path string
	Err  error
}

func (e *RefreshError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %q", e.Kind, e.Path)
	}

	return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Err)
}

func (e *RefreshError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// ValueError is returned by the Value methods. Err is either a *RefreshError,
// passed through unchanged, or ErrNoValuePresent.
type ValueError struct {
	Err error
}

func (e *ValueError) Error() string {
	var refreshErr *RefreshError
	if errors.As(e.Err, &refreshErr) {
		return "error refreshing values: " + e.Err.Error()
	}

	return e.Err.Error()
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
