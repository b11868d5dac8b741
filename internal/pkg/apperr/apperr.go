// Package apperr defines the error classes shared by the pure spreadsheet
// helpers and the tool adapters. Remote failures stay *googleapi.Error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed caller input: bad value shapes, colors,
	// unparsable ranges, or a missing parameter combination.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a reference to something absent from the current
	// spreadsheet metadata, such as a sheet title.
	ErrNotFound = errors.New("not found")
)

// Invalid returns an error wrapping ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
