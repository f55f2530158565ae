// Package filesource provides cached, typed access to a single value stored in a file.
//
// A source is bound to a path and a parse function. The first access reads the
// file, trims surrounding whitespace (unless disabled), parses the text and
// caches the result. Later accesses return the cached value; the file is read
// again only when a refresh interval is configured and has passed since the
// last refresh. There is no background goroutine: staleness is checked on
// access.
//
// Two variants share one refresh engine:
//   - Required: a missing file is an error (ErrNoValue)
//   - Optional: a missing file is a valid, cached absence
//
// # Errors
//
// Refresh failures are *RefreshError values whose Kind is ErrIO, ErrParse or
// ErrNoValue. The Value methods wrap them unchanged in *ValueError. A failed
// refresh never touches the cache.
//
//	port, err := filesource.NewRequired("/etc/app/port", parser.Int).Value()
//	switch {
//	case errors.Is(err, filesource.ErrNoValue):
//	    port = 8080
//	case err != nil:
//	    return err
//	}
//
// # Concurrency
//
// Sources are safe for use by multiple goroutines. A refresh holds the
// source's lock while reading, so concurrent callers see either the old or the
// new value and a stale source is read once.
package filesource
