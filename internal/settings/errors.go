package settings

import (
	"errors"
	"fmt"
)

// ErrNotFound matches NotFoundError with errors.Is.
var ErrNotFound = errors.New("no saved settings")

// NotFoundError means no backup exists at Path. Callers treat it as an
// expected outcome.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no saved settings found at %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError means the backup could not be written. The previous file,
// if any, is unchanged.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to write settings file %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FormatError means the backup exists but cannot be parsed.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to parse settings file %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
