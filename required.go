package filesource

import (
	"log/slog"
	"time"
)

var _ ValueSource[string] = (*Required[string])(nil)

// Required is a file source whose backing file must exist.
// A missing file is reported as an ErrNoValue refresh error on every access until it appears.
type Required[T any] struct {
	src *source[T]
}

// NewRequired binds a required source to path. No I/O happens until the first access.
// The source starts with auto-trim enabled and no refresh interval.
func NewRequired[T any](path string, parse ParseFunc[T]) *Required[T] {
	return &Required[T]{src: newSource(path, parse, true)}
}

// SetRefreshInterval makes the source re-read its file once interval has passed since the last refresh.
func (r *Required[T]) SetRefreshInterval(interval time.Duration) *Required[T] {
	r.src.setRefreshInterval(interval)

	return r
}

// ClearRefreshInterval stops automatic refreshes; the value read on first access is kept.
func (r *Required[T]) ClearRefreshInterval() *Required[T] {
	r.src.clearRefreshInterval()

	return r
}

// SetAutoTrim toggles stripping of leading and trailing whitespace before parsing.
func (r *Required[T]) SetAutoTrim(autoTrim bool) *Required[T] {
	r.src.setAutoTrim(autoTrim)

	return r
}

// SetLogger sets the logger used for refresh events. A nil logger means slog.Default().
func (r *Required[T]) SetLogger(logger *slog.Logger) *Required[T] {
	r.src.setLogger(logger)

	return r
}

// Path returns the path of the backing file.
func (r *Required[T]) Path() string {
	return r.src.path
}

// LastRefresh returns the time of the last successful refresh and whether one has happened.
func (r *Required[T]) LastRefresh() (time.Time, bool) {
	return r.src.lastRefreshTime()
}

// RefreshOnTimeout refreshes the value if it has never been read or the refresh interval has passed.
func (r *Required[T]) RefreshOnTimeout() error {
	return r.src.refreshOnTimeout()
}

// RefreshValue unconditionally re-reads and re-parses the backing file.
// On error the previously cached value is kept.
func (r *Required[T]) RefreshValue() error {
	return r.src.refreshValue()
}

// Value returns the cached value, refreshing it first when it is due.
// Errors are *ValueError values wrapping either a *RefreshError or ErrNoValuePresent.
func (r *Required[T]) Value() (T, error) {
	value, present, err := r.src.current()
	if err != nil {
		var zero T

		return zero, &ValueError{Err: err}
	}

	if !present {
		var zero T

		return zero, &ValueError{Err: ErrNoValuePresent}
	}

	return value, nil
}

// MustValue is like Value but panics on error.
// It is meant for start-up code where a missing required value is fatal.
func (r *Required[T]) MustValue() T {
	value, err := r.Value()
	if err != nil {
		panic(err)
	}

	return value
}
