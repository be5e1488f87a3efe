package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by backends when no value is stored under a key
var ErrNotFound = errors.New("key not found")

// CorruptStateError reports a stored snapshot that could not be decoded or
// failed validation. Callers recover by starting from defaults.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("stored snapshot %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// PersistenceWriteError reports that the backend rejected a write even after
// retrying. The adapter keeps working in memory afterwards.
type PersistenceWriteError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("failed to write %q after %d attempt(s): %v", e.Key, e.Attempts, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error { return e.Err }
