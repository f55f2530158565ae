package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	filesource "github.com/0xalexb/hjarta-filesource"
)

// DefaultRetryInterval is how long a FileLevel without a refresh interval
// keeps using its fallback after the level file failed to read or parse.
const DefaultRetryInterval = 10 * time.Second

// ErrUnknownLevel is returned by ParseLevel for names it does not recognise.
var ErrUnknownLevel = errors.New("unknown log level")

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	// Level is the fixed level, or the fallback level when LevelFile is set.
	Level string
	// LevelFile, if set, names a file holding the level. The logger follows
	// changes to it, checked at most once per LevelRefresh.
	LevelFile    string
	LevelRefresh time.Duration
}

// NewLogger creates a new slog.Logger with JSON handler and the specified output.
// The level is parsed from the config; defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	level, err := ParseLevel(config.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	var leveler slog.Leveler = level
	if config.LevelFile != "" {
		leveler = NewFileLevel(config.LevelFile, level, config.LevelRefresh)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       leveler,
		ReplaceAttr: nil,
	})

	return slog.New(handler)
}

// ParseLevel parses a level name. Matching is case-insensitive and WARNING is
// accepted as WARN. It has the shape of a file source parse function.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
}

// FileLevel is a slog.Leveler whose level is read from a file.
// When the file is absent or does not hold a valid level, the fallback is used.
type FileLevel struct {
	source   *filesource.Optional[slog.Level]
	fallback slog.Level
	retry    time.Duration

	mu       sync.Mutex
	failed   bool
	failedAt time.Time
	timeNow  func() time.Time // for tests
}

// NewFileLevel creates a FileLevel reading path. A zero refresh means the file
// is read once, on the first log call that finds it readable.
//
// After a failed read or parse the fallback is served without touching the
// file for refresh, or DefaultRetryInterval when refresh is zero.
func NewFileLevel(path string, fallback slog.Level, refresh time.Duration) *FileLevel {
	// The source must not log through a handler that may be asking it for the level.
	source := filesource.NewOptional(path, ParseLevel).
		SetLogger(slog.New(slog.DiscardHandler))

	retry := DefaultRetryInterval
	if refresh > 0 {
		source.SetRefreshInterval(refresh)
		retry = refresh
	}

	return &FileLevel{
		source:   source,
		fallback: fallback,
		retry:    retry,
	}
}

// Level implements slog.Leveler.
func (l *FileLevel) Level() slog.Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failed && !l.failedAt.Add(l.retry).Before(l.now()) {
		return l.fallback
	}

	level, present, err := l.source.Value()
	if err != nil {
		l.failed = true
		l.failedAt = l.now()

		return l.fallback
	}

	l.failed = false

	if !present {
		return l.fallback
	}

	return level
}

func (l *FileLevel) now() time.Time {
	if l.timeNow != nil {
		return l.timeNow()
	}

	return time.Now()
}
