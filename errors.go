package stepper

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stepper package.
var (
	// ErrInvalidGeometry is returned when a dimension or style value cannot
	// produce valid geometry (non-positive sizes, negative widths, NaN).
	ErrInvalidGeometry = errors.New("stepper: invalid geometry")

	// ErrMeasurementUnavailable marks a label whose width could not be
	// measured. Layout degrades to a zero width and keeps going.
	ErrMeasurementUnavailable = errors.New("stepper: text measurement unavailable")
)

// GeometryError reports the field that failed validation.
// It matches ErrInvalidGeometry with errors.Is.
type GeometryError struct {
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("stepper: invalid geometry: %s = %v", e.Field, e.Value)
}

// Is reports whether target is ErrInvalidGeometry.
func (e *GeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}
