package tomlio

import (
	"errors"
	"fmt"
)

// FileNotFoundError reports a profile, overlay or schema path that does not
// exist or could not be read. It is detected at load time, before any merge
// or schema logic runs.
type FileNotFoundError struct {
	// Path is the path that could not be read.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed TOML document.
type ParseError struct {
	// Path is the file the document was read from.
	Path string

	// Err is the codec error describing the syntax problem.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid TOML in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsFileNotFound returns true if err is a FileNotFoundError.
func IsFileNotFound(err error) bool {
	var e *FileNotFoundError
	return errors.As(err, &e)
}

// IsParseError returns true if err is a ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}
