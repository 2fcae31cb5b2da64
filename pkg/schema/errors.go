package schema

import (
	"errors"
	"fmt"
)

// ParseError reports a malformed schema declaration.
type ParseError struct {
	// File is the schema fragment containing the declaration.
	File string

	// Path is the dotted path of the offending declaration.
	Path string

	// Reason describes what is wrong with the declaration.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid schema declaration %q in %s: %s: %v", e.Path, e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid schema declaration %q in %s: %s", e.Path, e.File, e.Reason)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateNameError reports two schema declarations that compile to the
// same generated name or dotted path.
type DuplicateNameError struct {
	// Name is the colliding generated name.
	Name string

	// Path is the colliding dotted path.
	Path string

	// FirstFile and SecondFile are the fragments that both declare it.
	FirstFile  string
	SecondFile string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate schema variable %s (path %q) declared in both %s and %s",
		e.Name, e.Path, e.FirstFile, e.SecondFile)
}

// IsParseError returns true if err is a schema ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsDuplicateName returns true if err is a DuplicateNameError.
func IsDuplicateName(err error) bool {
	var e *DuplicateNameError
	return errors.As(err, &e)
}
