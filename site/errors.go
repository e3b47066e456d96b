package site

import (
	"errors"
	"fmt"
)

// Sentinel errors for coordinate validation failures.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrInvalidNumber indicates a coordinate string that is not a finite number.
	ErrInvalidNumber = errors.New("not a finite number")

	// ErrOutOfRange indicates a coordinate outside its valid range.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrUnknownPreset indicates a preset identifier with no registered site.
	ErrUnknownPreset = errors.New("unknown preset site")
)

// CoordinateError wraps a coordinate validation failure with the field and
// raw input that caused it. It preserves the sentinel in the chain for
// errors.Is assertions.
type CoordinateError struct {
	// Kind is the sentinel classifying the failure.
	Kind error
	// Field is "latitude" or "longitude".
	Field string
	// Raw is the rejected input string.
	Raw string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Raw, e.Kind)
}

// Unwrap returns the sentinel for errors.Is chain traversal.
func (e *CoordinateError) Unwrap() error {
	return e.Kind
}
