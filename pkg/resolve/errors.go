package resolve

import (
	"errors"
	"fmt"
)

// MissingValueError reports a schema variable absent from the merged config
// with no declared default.
type MissingValueError struct {
	// Name is the generated variable name.
	Name string

	// Path is the dotted TOML path that was looked up.
	Path string
}

// Error implements the error interface.
func (e *MissingValueError) Error() string {
	return fmt.Sprintf("required config value %s (path %q) is missing and has no default", e.Name, e.Path)
}

// ValidationError reports a config value present in the merged config but
// outside its variable's declared domain.
type ValidationError struct {
	// Name is the generated variable name.
	Name string

	// Raw is the offending merged-config value.
	Raw any

	// Domain describes the declared domain the value failed.
	Domain string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config value %s = %v is outside the declared domain %s", e.Name, e.Raw, e.Domain)
}

// IsMissingValue returns true if err is a MissingValueError.
func IsMissingValue(err error) bool {
	var e *MissingValueError
	return errors.As(err, &e)
}

// IsValidationError returns true if err is a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
