package merge

import (
	"errors"
	"fmt"
)

// CombineConflictError reports a key that appears in two documents which
// were assumed to be disjoint. It carries both values and both source files
// so the caller can print an actionable message.
type CombineConflictError struct {
	// Path is the dotted path of the conflicting key.
	Path string

	// ValueA and SourceA describe the first occurrence.
	ValueA  any
	SourceA string

	// ValueB and SourceB describe the second occurrence.
	ValueB  any
	SourceB string
}

// Error implements the error interface.
func (e *CombineConflictError) Error() string {
	return fmt.Sprintf("conflicting key %q: %v (from %s) vs %v (from %s)",
		e.Path, e.ValueA, e.SourceA, e.ValueB, e.SourceB)
}

// IsCombineConflict returns true if err is a CombineConflictError.
func IsCombineConflict(err error) bool {
	var e *CombineConflictError
	return errors.As(err, &e)
}
