// Package file reads the backing file of a file source.
//
// A Fetcher is bound to one path and performs no I/O until asked. Exists
// separates "nothing there" from real stat failures, and Fetch reads the
// whole file, holding the handle only for the duration of the call.
//
// Usage:
//
//	fetcher := file.NewFetcher("/etc/app/port")
//	exists, err := fetcher.Exists()
//	if err != nil || !exists {
//	    // Handle error or absence
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, fs.ErrNotExist) to detect a file removed between Exists and Fetch
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
