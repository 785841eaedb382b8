package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrPrepareDestination = errors.New("cannot prepare destination")
	ErrCopyFailed         = errors.New("copy failed")
	ErrInvalidPath        = errors.New("invalid path")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPath
}

// PrepareError represents a failure to reset the destination directory.
// It aborts the run.
type PrepareError struct {
	Path string
	Err  error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("cannot prepare destination %s: %v", e.Path, e.Err)
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}

func (e *PrepareError) Is(target error) bool {
	return target == ErrPrepareDestination
}

// CopyError represents a single artifact that could not be copied.
// The run continues past it.
type CopyError struct {
	Source      string
	Destination string
	Err         error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

func (e *CopyError) Is(target error) bool {
	return target == ErrCopyFailed
}
