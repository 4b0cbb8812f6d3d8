package plan

import (
	"errors"
	"fmt"
)

// ErrNotYetCreated is returned by Store.Read when no document has been
// written yet. It is an expected empty-state result, not a failure: the
// monitor skips the cycle and producers merge against an empty document.
var ErrNotYetCreated = errors.New("plan not yet created")

// ValidationError rejects a malformed update batch before anything is
// written. The persisted document is untouched when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid plan update: " + e.Reason
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps an I/O failure on the backing file. The store never
// retries internally; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("plan storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
