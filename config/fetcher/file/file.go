package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher reads a single file from the filesystem.
// Nothing is cached: every call to Fetch opens, reads and closes the file again.
type Fetcher struct {
	filepath string
}

// NewFetcher creates a Fetcher for the given path. The path is cleaned but not
// checked; no I/O happens until Exists or Fetch is called.
func NewFetcher(fpath string) *Fetcher {
	return &Fetcher{
		filepath: filepath.Clean(fpath),
	}
}

// Path returns the cleaned path of the file.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Exists reports whether something is present at the path.
// A missing file is not an error; any other stat failure is.
func (f *Fetcher) Exists() (bool, error) {
	_, err := os.Stat(f.filepath)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("stat file %q: %w", f.filepath, err)
}

// Fetch returns the full contents of the file.
// The file handle does not outlive the call.
func (f *Fetcher) Fetch() ([]byte, error) {
	file, err := os.Open(f.filepath) // #nosec G304 -- path is cleaned at construction
	if err != nil {
		return nil, fmt.Errorf("opening file %q: %w", f.filepath, err)
	}

	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", f.filepath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", f.filepath, ErrPathIsDirectory)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", f.filepath, err)
	}

	return data, nil
}
