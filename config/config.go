package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// ErrNilValue is returned by Checked when the parse function yields a nil pointer.
var ErrNilValue = errors.New("parsed value is nil")

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Checked wraps a parse function so that every parsed value gets its defaults
// applied and is then validated. A validation failure is returned as a parse
// error, so an invalid file never replaces a cached value.
//
// The hooks are looked up on *T first and then on T, which covers both
// value types with pointer receivers and pointer types such as *ServerConfig.
// A nil pointer result, as produced by decoding "null", is rejected with
// ErrNilValue before any hook runs.
func Checked[T any](parse func(string) (T, error)) func(string) (T, error) {
	return func(text string) (T, error) {
		var zero T

		value, err := parse(text)
		if err != nil {
			return zero, err
		}

		if isNilPointer(value) {
			return zero, fmt.Errorf("%w: %T", ErrNilValue, value)
		}

		targetDefaulter, isDefaulter := lookup[Defaulter](&value)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Debug("defaults applied", slog.String("type", fmt.Sprintf("%T", value)))
			}
		}

		targetValidatable, isValidatable := lookup[Validator](&value)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return zero, fmt.Errorf("validating error: %w", err)
			}
		}

		return value, nil
	}
}

func lookup[I any, T any](value *T) (I, bool) {
	hook, ok := any(value).(I)
	if ok {
		return hook, true
	}

	hook, ok = any(*value).(I)

	return hook, ok
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
