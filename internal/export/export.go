// Package export writes rendered art to files and streams.
package export

import (
	"fmt"
	"io"
	"os"
)

// DefaultPath is the file written by Save.
const DefaultPath = "ascii_art.txt"

// WriteError reports a failure to write rendered art.
type WriteError struct {
	// Path is the destination file, or empty for a stream.
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to write art: %v", e.Err)
	}
	return fmt.Sprintf("failed to write art to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Save writes text to DefaultPath in the working directory.
func Save(text string) error {
	return SaveTo(DefaultPath, text)
}

// SaveTo writes text to path as UTF-8, creating the file with mode 0644 or
// truncating an existing one.
func SaveTo(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Write copies text to w unchanged.
func Write(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}
