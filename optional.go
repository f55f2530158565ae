package filesource

import (
	"log/slog"
	"time"
)

var _ OptionalValueSource[string] = (*Optional[string])(nil)

// Optional is a file source whose backing file may be absent.
// Absence is cached like any other value and is not an error.
type Optional[T any] struct {
	src *source[T]
}

// NewOptional binds an optional source to path. No I/O happens until the first access.
// The source starts with auto-trim enabled and no refresh interval.
func NewOptional[T any](path string, parse ParseFunc[T]) *Optional[T] {
	return &Optional[T]{src: newSource(path, parse, false)}
}

// SetRefreshInterval makes the source re-read its file once interval has passed since the last refresh.
func (o *Optional[T]) SetRefreshInterval(interval time.Duration) *Optional[T] {
	o.src.setRefreshInterval(interval)

	return o
}

// ClearRefreshInterval stops automatic refreshes.
func (o *Optional[T]) ClearRefreshInterval() *Optional[T] {
	o.src.clearRefreshInterval()

	return o
}

// SetAutoTrim toggles stripping of leading and trailing whitespace before parsing.
func (o *Optional[T]) SetAutoTrim(autoTrim bool) *Optional[T] {
	o.src.setAutoTrim(autoTrim)

	return o
}

// SetLogger sets the logger used for refresh events. A nil logger means slog.Default().
func (o *Optional[T]) SetLogger(logger *slog.Logger) *Optional[T] {
	o.src.setLogger(logger)

	return o
}

// Path returns the path of the backing file.
func (o *Optional[T]) Path() string {
	return o.src.path
}

// LastRefresh returns the time of the last successful refresh and whether one has happened.
func (o *Optional[T]) LastRefresh() (time.Time, bool) {
	return o.src.lastRefreshTime()
}

// RefreshOnTimeout refreshes the value if it has never been read or the refresh interval has passed.
func (o *Optional[T]) RefreshOnTimeout() error {
	return o.src.refreshOnTimeout()
}

// RefreshValue unconditionally re-reads and re-parses the backing file.
// A missing file caches absence; any other error keeps the previous state.
func (o *Optional[T]) RefreshValue() error {
	return o.src.refreshValue()
}

// Value returns the cached value and whether it is present, refreshing first when due.
// Errors are *ValueError values wrapping a *RefreshError.
func (o *Optional[T]) Value() (T, bool, error) {
	value, present, err := o.src.current()
	if err != nil {
		return value, false, &ValueError{Err: err}
	}

	return value, present, nil
}

// ValueOr returns fallback when the file is absent. Read and parse errors are still returned.
func (o *Optional[T]) ValueOr(fallback T) (T, error) {
	value, present, err := o.Value()
	if err != nil {
		return value, err
	}

	if !present {
		return fallback, nil
	}

	return value, nil
}
