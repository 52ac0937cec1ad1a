package inventory

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references a code that is not in
// the repository.
var ErrNotFound = errors.New("item not found")

// PersistenceError wraps a failed backing-store call. When one is returned
// the in-memory collection is left at its last-known-good state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
