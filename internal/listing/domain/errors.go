package domain

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNoImages        = errors.New("at least one image is required")
)

// FieldError reports a form field that is missing or failed to parse. It is
// always produced before any network call and is surfaced to the user with
// the specific field and reason.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// PersistenceError wraps a store failure on the final record insert. All
// uploads already succeeded at that point; the blobs stay behind as orphans.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist listing: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
