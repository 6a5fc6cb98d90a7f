package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("catalog record not found")

// ErrClosed is returned by a store after Close.
var ErrClosed = errors.New("catalog store is closed")

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // Storage backend ("sqlite", "sqlite3", "memory")
	Operation string // Operation that failed ("open", "replace", "list", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
