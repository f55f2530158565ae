package fxsource

import "time"

// Option defines a function type for configuring a file source module.
type Option func(*Config)

// WithRefreshInterval sets the refresh interval of the source.
func WithRefreshInterval(interval time.Duration) Option {
	return func(cfg *Config) {
		cfg.RefreshInterval = interval
	}
}

// WithoutAutoTrim disables whitespace trimming.
func WithoutAutoTrim() Option {
	return func(cfg *Config) {
		cfg.DisableAutoTrim = true
	}
}

// WithLazyLoad defers the first read until the value is first requested.
// By default the file is read when the application starts, so a broken or
// missing required file stops the start.
func WithLazyLoad() Option {
	return func(cfg *Config) {
		cfg.Lazy = true
	}
}
