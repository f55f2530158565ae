// Package logging provides structured logging using Go's standard library log/slog.
// It outputs logs in JSON format and can take its level from a file, so the
// verbosity of a running process changes when the file is edited.
package logging
