// Package fxsource provides Uber Fx modules that supply file sources to a DI container.
package fxsource

import (
	"errors"
	"time"
)

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("source name must not be empty")

// ErrEmptyPath is returned when the file path is empty.
var ErrEmptyPath = errors.New("source path must not be empty")

// ErrNilParse is returned when no parse function is given.
var ErrNilParse = errors.New("parse function must not be nil")

// ErrNegativeInterval is returned when the refresh interval is negative.
var ErrNegativeInterval = errors.New("refresh interval must not be negative")

// Config holds the settings applied to a source before it is supplied.
type Config struct {
	// RefreshInterval enables periodic re-reads when positive.
	RefreshInterval time.Duration
	// DisableAutoTrim keeps surrounding whitespace in the file contents.
	DisableAutoTrim bool
	// Lazy skips the read on application start.
	Lazy bool
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.RefreshInterval < 0 {
		return ErrNegativeInterval
	}

	return nil
}
