package filesource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startTime = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: startTime}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

type mockDataFetcher struct {
	existsFunc func() (bool, error)
	fetchFunc  func() ([]byte, error)
	fetches    int
}

func (m *mockDataFetcher) Exists() (bool, error) {
	return m.existsFunc()
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	m.fetches++

	return m.fetchFunc()
}

func parseString(text string) (string, error) {
	return text, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
}

func tempPath(t *testing.T, name string) string {
	t.Helper()

	return filepath.Join(t.TempDir(), name)
}

func TestRequired_Value_Simple(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "test-required")
	writeFile(t, path, "hello world!\n")

	src := NewRequired[string](path, parseString)

	value, err := src.Value()

	require.NoError(t, err)
	assert.Equal(t, "hello world!", value)
}

func TestOptional_Value_Given(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "test-optional")
	writeFile(t, path, "hello optional world!")

	src := NewOptional[string](path, parseString)

	value, present, err := src.Value()

	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "hello optional world!", value)
}

func TestOptional_Value_Missing(t *testing.T) {
	t.Parallel()

	src := NewOptional[string](tempPath(t, "test-optional-missing"), parseString)

	for range 3 {
		value, present, err := src.Value()

		require.NoError(t, err)
		assert.False(t, present)
		assert.Empty(t, value)
	}

	_, refreshed := src.LastRefresh()
	assert.True(t, refreshed, "absence is a successful refresh")
}

func TestRequired_Value_MissingFile(t *testing.T) {
	t.Parallel()

	src := NewRequired[string](tempPath(t, "missing"), parseString)

	for range 3 {
		value, err := src.Value()

		require.Error(t, err)
		assert.Empty(t, value)
		require.ErrorIs(t, err, ErrNoValue)
		assert.NotErrorIs(t, err, ErrNoValuePresent)

		var valueErr *ValueError
		require.ErrorAs(t, err, &valueErr)

		var refreshErr *RefreshError
		require.ErrorAs(t, err, &refreshErr)
		assert.Equal(t, src.Path(), refreshErr.Path)
		assert.NoError(t, refreshErr.Err)
	}

	_, refreshed := src.LastRefresh()
	assert.False(t, refreshed)
}

func TestRequired_Value_FileAppearsLater(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "late")
	src := NewRequired[int](path, strconv.Atoi)

	_, err := src.Value()
	require.ErrorIs(t, err, ErrNoValue)

	writeFile(t, path, "42")

	value, err := src.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestNew_NoIOAtConstruction(t *testing.T) {
	t.Parallel()

	fetcher := &mockDataFetcher{
		existsFunc: func() (bool, error) {
			t.Fatal("Exists called at construction")

			return false, nil
		},
		fetchFunc: func() ([]byte, error) {
			t.Fatal("Fetch called at construction")

			return nil, nil
		},
	}

	src := NewRequired[string]("/unused", parseString).
		SetRefreshInterval(time.Second).
		SetAutoTrim(false).
		SetLogger(nil)
	src.src.fetcher = fetcher

	_, refreshed := src.LastRefresh()
	assert.False(t, refreshed)
	assert.Equal(t, "/unused", src.Path())
	assert.Equal(t, 0, fetcher.fetches)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	src := NewOptional[string]("/unused", parseString)

	assert.True(t, src.src.autoTrim)
	assert.False(t, src.src.hasInterval)
	assert.False(t, src.src.required)
	assert.False(t, src.src.present)
	assert.True(t, NewRequired[string]("/unused", parseString).src.required)
}

func TestRefreshInterval_StalenessLaw(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	path := tempPath(t, "refresh-overwrite")
	writeFile(t, path, "first")

	src := NewOptional[string](path, parseString).SetRefreshInterval(5 * time.Second)
	src.src.timeNow = clock.Now

	value, present, err := src.Value()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "first", value)

	writeFile(t, path, "second")

	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{name: "immediately", at: startTime, expected: "first"},
		{name: "just before interval", at: startTime.Add(5*time.Second - time.Nanosecond), expected: "first"},
		// Stale only once last refresh plus interval is strictly before now.
		{name: "exactly at interval", at: startTime.Add(5 * time.Second), expected: "first"},
		{name: "after interval", at: startTime.Add(5*time.Second + time.Nanosecond), expected: "second"},
	}

	// Subtests share the clock and run in order.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Set(tt.at)

			value, _, err := src.Value()

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	last, refreshed := src.LastRefresh()
	require.True(t, refreshed)
	assert.Equal(t, startTime.Add(5*time.Second+time.Nanosecond), last)
}

func TestRefreshInterval_NoIntervalIsSticky(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	path := tempPath(t, "sticky")
	writeFile(t, path, "first")

	src := NewRequired[string](path, parseString)
	src.src.timeNow = clock.Now

	value, err := src.Value()
	require.NoError(t, err)
	assert.Equal(t, "first", value)

	writeFile(t, path, "second")
	clock.Set(startTime.Add(365 * 24 * time.Hour))

	value, err = src.Value()
	require.NoError(t, err)
	assert.Equal(t, "first", value)

	require.NoError(t, src.RefreshValue())

	value, err = src.Value()
	require.NoError(t, err)
	assert.Equal(t, "second", value, "explicit refresh always re-reads")
}

func TestRefreshInterval_Cleared(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	path := tempPath(t, "cleared")
	writeFile(t, path, "first")

	src := NewRequired[string](path, parseString).SetRefreshInterval(time.Second)
	src.src.timeNow = clock.Now

	_, err := src.Value()
	require.NoError(t, err)

	src.ClearRefreshInterval()
	writeFile(t, path, "second")
	clock.Set(startTime.Add(time.Hour))

	value, err := src.Value()
	require.NoError(t, err)
	assert.Equal(t, "first", value)
}

func TestRefreshOnTimeout_ReadsOncePerWindow(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fetcher := &mockDataFetcher{
		existsFunc: func() (bool, error) { return true, nil },
		fetchFunc:  func() ([]byte, error) { return []byte("value"), nil },
	}

	src := NewRequired[string]("/mock", parseString).SetRefreshInterval(time.Minute)
	src.src.fetcher = fetcher
	src.src.timeNow = clock.Now

	for range 5 {
		require.NoError(t, src.RefreshOnTimeout())
	}

	assert.Equal(t, 1, fetcher.fetches)

	clock.Set(startTime.Add(2 * time.Minute))

	for range 5 {
		_, err := src.Value()
		require.NoError(t, err)
	}

	assert.Equal(t, 2, fetcher.fetches)
}

func TestAutoTrim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		autoTrim bool
		expected int
		wantErr  bool
	}{
		{name: "trimmed padded", content: "  42\n", autoTrim: true, expected: 42},
		{name: "trimmed plain", content: "42", autoTrim: true, expected: 42},
		{name: "untrimmed plain", content: "42", autoTrim: false, expected: 42},
		{name: "untrimmed padded", content: "  42\n", autoTrim: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := tempPath(t, "value")
			writeFile(t, path, tt.content)

			src := NewRequired[int](path, strconv.Atoi).SetAutoTrim(tt.autoTrim)

			value, err := src.Value()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrParse)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestAutoTrim_Disabled_KeepsWhitespace(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "raw")
	writeFile(t, path, "  value\n")

	value, err := NewRequired[string](path, parseString).SetAutoTrim(false).Value()

	require.NoError(t, err)
	assert.Equal(t, "  value\n", value)
}

func TestRefreshValue_ParseError(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "port")
	writeFile(t, path, "8080")

	src := NewRequired[int](path, strconv.Atoi)

	value, err := src.Value()
	require.NoError(t, err)
	require.Equal(t, 8080, value)

	writeFile(t, path, "eighty")

	err = src.RefreshValue()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrParse)

	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr, "the parser's own error is preserved")
	assert.Equal(t, "eighty", numErr.Num)
	assert.Contains(t, err.Error(), path)

	value, err = src.Value()
	require.NoError(t, err)
	assert.Equal(t, 8080, value, "failed refresh keeps the cache")
}

func TestRefreshValue_EmptyFileGoesToParser(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "empty")
	writeFile(t, path, " \n")

	str, err := NewRequired[string](path, parseString).Value()
	require.NoError(t, err)
	assert.Empty(t, str)

	_, err = NewRequired[int](path, strconv.Atoi).Value()
	require.ErrorIs(t, err, ErrParse)
}

func TestRefreshValue_IOErrors(t *testing.T) {
	t.Parallel()

	statErr := errors.New("permission denied")
	readErr := errors.New("read failed")

	tests := []struct {
		name       string
		existsFunc func() (bool, error)
		fetchFunc  func() ([]byte, error)
		wantErr    error
	}{
		{
			name:       "stat error",
			existsFunc: func() (bool, error) { return false, statErr },
			fetchFunc:  func() ([]byte, error) { return nil, nil },
			wantErr:    statErr,
		},
		{
			name:       "read error",
			existsFunc: func() (bool, error) { return true, nil },
			fetchFunc:  func() ([]byte, error) { return nil, readErr },
			wantErr:    readErr,
		},
		{
			name:       "removed after existence check",
			existsFunc: func() (bool, error) { return true, nil },
			fetchFunc:  func() ([]byte, error) { return nil, fs.ErrNotExist },
			wantErr:    fs.ErrNotExist,
		},
		{
			name:       "invalid utf-8",
			existsFunc: func() (bool, error) { return true, nil },
			fetchFunc:  func() ([]byte, error) { return []byte{0xff, 0xfe, 'a'}, nil },
			wantErr:    ErrInvalidText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, required := range []bool{true, false} {
				src := newSource[string]("/mock", parseString, required)
				src.fetcher = &mockDataFetcher{existsFunc: tt.existsFunc, fetchFunc: tt.fetchFunc}

				err := src.refreshValue()

				require.Error(t, err)
				require.ErrorIs(t, err, ErrIO)
				require.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, ErrNoValue, "I/O failures are never reported as missing values")
				assert.False(t, src.refreshed)
			}
		})
	}
}

func TestRefreshValue_DirectoryIsIOError(t *testing.T) {
	t.Parallel()

	_, _, err := NewOptional[string](t.TempDir(), parseString).Value()

	require.ErrorIs(t, err, ErrIO)
}

func TestOptional_FileRemovedCachesAbsence(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "removable")
	writeFile(t, path, "present")

	src := NewOptional[string](path, parseString)

	value, present, err := src.Value()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "present", value)

	require.NoError(t, os.Remove(path))
	require.NoError(t, src.RefreshValue())

	value, present, err = src.Value()
	require.NoError(t, err)
	assert.False(t, present)
	assert.Empty(t, value)
}

func TestRequired_FileRemovedKeepsCache(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "removable")
	writeFile(t, path, "present")

	src := NewRequired[string](path, parseString)

	_, err := src.Value()
	require.NoError(t, err)

	before, _ := src.LastRefresh()

	require.NoError(t, os.Remove(path))
	require.ErrorIs(t, src.RefreshValue(), ErrNoValue)

	after, _ := src.LastRefresh()
	assert.Equal(t, before, after)

	value, err := src.Value()
	require.NoError(t, err, "no refresh is due without an interval")
	assert.Equal(t, "present", value)
}

func TestRequired_Value_NoValuePresent(t *testing.T) {
	t.Parallel()

	src := NewRequired[string]("/mock", parseString)
	src.src.refreshed = true

	_, err := src.Value()

	require.ErrorIs(t, err, ErrNoValuePresent)
	assert.NotErrorIs(t, err, ErrNoValue)
	assert.Equal(t, ErrNoValuePresent.Error(), err.Error())
}

func TestRequired_MustValue(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "must")
	writeFile(t, path, "ok")

	assert.Equal(t, "ok", NewRequired[string](path, parseString).MustValue())
	assert.Panics(t, func() {
		NewRequired[string](tempPath(t, "missing"), parseString).MustValue()
	})
}

func TestOptional_ValueOr(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "workers")

	src := NewOptional[int](path, strconv.Atoi).SetRefreshInterval(0)
	clock := newFakeClock()
	src.src.timeNow = clock.Now

	value, err := src.ValueOr(4)
	require.NoError(t, err)
	assert.Equal(t, 4, value)

	writeFile(t, path, "16")
	clock.Set(startTime.Add(time.Second))

	value, err = src.ValueOr(4)
	require.NoError(t, err)
	assert.Equal(t, 16, value)

	writeFile(t, path, "many")
	clock.Set(startTime.Add(2 * time.Second))

	_, err = src.ValueOr(4)
	require.ErrorIs(t, err, ErrParse, "fallback only covers absence")
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	noValue := &RefreshError{Kind: ErrNoValue, Path: "/etc/app/port"}
	assert.Equal(t, `no value given/file found: "/etc/app/port"`, noValue.Error())

	parseErr := &RefreshError{Kind: ErrParse, Path: "/etc/app/port", Err: errors.New("bad")}
	assert.Equal(t, `error parsing string value to type "/etc/app/port": bad`, parseErr.Error())

	wrapped := &ValueError{Err: parseErr}
	assert.Equal(t, "error refreshing values: "+parseErr.Error(), wrapped.Error())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "shared")
	writeFile(t, path, "7")

	src := NewRequired[int](path, strconv.Atoi).SetRefreshInterval(0)

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 50 {
				value, err := src.Value()
				assert.NoError(t, err)
				assert.Equal(t, 7, value)
			}
		}()
	}

	wg.Wait()
}
