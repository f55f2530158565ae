package parser

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ErrEmptyText is returned by parsers that have no sensible value for empty input.
var ErrEmptyText = errors.New("empty text")

// String returns the text unchanged. It never fails.
func String(text string) (string, error) {
	return text, nil
}

// Int parses a base 10 integer.
func Int(text string) (int, error) {
	return strconv.Atoi(text)
}

// Int64 parses an integer, accepting base prefixes such as 0x and 0o.
func Int64(text string) (int64, error) {
	return strconv.ParseInt(text, 0, 64)
}

// Uint64 parses an unsigned integer, accepting base prefixes such as 0x and 0o.
func Uint64(text string) (uint64, error) {
	return strconv.ParseUint(text, 0, 64)
}

// Float64 parses a floating point number.
func Float64(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

// Bool parses the forms accepted by strconv.ParseBool.
func Bool(text string) (bool, error) {
	return strconv.ParseBool(text)
}

// Duration parses a Go duration such as "1m30s".
func Duration(text string) (time.Duration, error) {
	return time.ParseDuration(text)
}

// Text parses any type whose pointer implements encoding.TextUnmarshaler,
// for example netip.Addr or big.Int.
//
//	src := filesource.NewRequired("/etc/app/bind", parser.Text[netip.Addr])
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](text string) (T, error) {
	var value T

	err := PT(&value).UnmarshalText([]byte(text))
	if err != nil {
		var zero T

		return zero, fmt.Errorf("unmarshal %T: %w", value, err)
	}

	return value, nil
}

// ByteSize parses a human readable size such as "64 MiB" or "1.5GB" into bytes.
func ByteSize(text string) (uint64, error) {
	if text == "" {
		return 0, fmt.Errorf("byte size: %w", ErrEmptyText)
	}

	size, err := humanize.ParseBytes(text)
	if err != nil {
		return 0, fmt.Errorf("byte size %q: %w", text, err)
	}

	return size, nil
}

// Version parses a semantic version. A leading "v" and missing minor or patch parts are accepted.
func Version(text string) (*semver.Version, error) {
	version, err := semver.NewVersion(text)
	if err != nil {
		return nil, fmt.Errorf("version %q: %w", text, err)
	}

	return version, nil
}

// UUID parses a UUID in any of the forms accepted by uuid.Parse.
func UUID(text string) (uuid.UUID, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("uuid %q: %w", text, err)
	}

	return id, nil
}

// ULID parses a ULID, rejecting characters outside the Crockford base32 alphabet.
func ULID(text string) (ulid.ULID, error) {
	id, err := ulid.ParseStrict(text)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("ulid %q: %w", text, err)
	}

	return id, nil
}
