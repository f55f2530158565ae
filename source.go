package filesource

import (
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/0xalexb/hjarta-filesource/config/fetcher/file"
)

// ParseFunc converts the text of a backing file into a value of type T.
// It must either return a value or an error; it is never expected to substitute defaults for bad input.
type ParseFunc[T any] func(string) (T, error)

// ValueSource is implemented by sources that always yield a value or an error.
type ValueSource[T any] interface {
	Value() (T, error)
}

// OptionalValueSource is implemented by sources whose value may be absent.
type OptionalValueSource[T any] interface {
	Value() (T, bool, error)
}

type dataFetcher interface {
	Exists() (bool, error)
	Fetch() ([]byte, error)
}

// source is the refresh engine shared by Required and Optional.
type source[T any] struct {
	mu sync.Mutex

	path     string
	fetcher  dataFetcher
	parse    ParseFunc[T]
	required bool

	value       T
	present     bool
	lastRefresh time.Time
	refreshed   bool

	refreshInterval time.Duration
	hasInterval     bool
	autoTrim        bool

	logger  *slog.Logger
	timeNow func() time.Time // for tests
}

func newSource[T any](path string, parse ParseFunc[T], required bool) *source[T] {
	return &source[T]{
		path:     path,
		fetcher:  file.NewFetcher(path),
		parse:    parse,
		required: required,
		autoTrim: true,
	}
}

func (s *source[T]) setRefreshInterval(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshInterval = interval
	s.hasInterval = true
}

func (s *source[T]) clearRefreshInterval() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshInterval = 0
	s.hasInterval = false
}

func (s *source[T]) setAutoTrim(autoTrim bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoTrim = autoTrim
}

func (s *source[T]) setLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger = logger
}

func (s *source[T]) lastRefreshTime() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastRefresh, s.refreshed
}

func (s *source[T]) refreshOnTimeout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refreshOnTimeoutLocked()
}

func (s *source[T]) refreshValue() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refreshLocked()
}

// current runs the refresh decision and returns whatever is cached afterwards.
func (s *source[T]) current() (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.refreshOnTimeoutLocked()
	if err != nil {
		var zero T

		return zero, false, err
	}

	return s.value, s.present, nil
}

func (s *source[T]) refreshOnTimeoutLocked() error {
	if !s.refreshed {
		return s.refreshLocked()
	}

	if s.hasInterval && s.lastRefresh.Add(s.refreshInterval).Before(s.now()) {
		return s.refreshLocked()
	}

	return nil
}

func (s *source[T]) refreshLocked() error {
	exists, err := s.fetcher.Exists()
	if err != nil {
		return s.fail(ErrIO, err)
	}

	if !exists {
		if s.required {
			return s.fail(ErrNoValue, nil)
		}

		var zero T

		s.store(zero, false)

		return nil
	}

	data, err := s.fetcher.Fetch()
	if err != nil {
		return s.fail(ErrIO, err)
	}

	if !utf8.Valid(data) {
		return s.fail(ErrIO, ErrInvalidText)
	}

	text := string(data)
	if s.autoTrim {
		text = strings.TrimSpace(text)
	}

	value, err := s.parse(text)
	if err != nil {
		return s.fail(ErrParse, err)
	}

	s.store(value, true)

	return nil
}

// store replaces the cached value and the refresh time together.
func (s *source[T]) store(value T, present bool) {
	s.value = value
	s.present = present
	s.lastRefresh = s.now()
	s.refreshed = true

	s.log().Debug("file source refreshed", slog.String("path", s.path), slog.Bool("present", present))
}

func (s *source[T]) fail(kind, cause error) error {
	err := &RefreshError{
		Kind: kind,
		Path: s.path,
		Err:  cause,
	}

	s.log().Warn("file source refresh failed", slog.String("path", s.path), slog.Any("error", err))

	return err
}

func (s *source[T]) now() time.Time {
	if s.timeNow != nil {
		return s.timeNow()
	}

	return time.Now()
}

func (s *source[T]) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}

	return slog.Default()
}
