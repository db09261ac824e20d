package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ReferenceNotFoundError reports a foreign id that names no existing record.
// Only the create-time integrity checks (and update checks, when enabled)
// produce it.
type ReferenceNotFoundError struct {
	Entity string
	ID     int64
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d does not exist", e.Entity, e.ID)
}
