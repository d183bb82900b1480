package bsm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is wrapped by every *ParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch is returned when grid inputs used together do not
	// share the same dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrEmptyGrid is returned for a grid input with zero rows or columns.
	ErrEmptyGrid = errors.New("empty grid")

	// ErrUnknownMeasure is returned for an output name the engine does not
	// compute.
	ErrUnknownMeasure = errors.New("unknown measure")
)

// ParameterError describes the first out-of-domain input found by strict
// validation.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string

	// Row and Col locate the offending cell in grid mode; both are -1 for a
	// scalar point.
	Row, Col int
}

func (e *ParameterError) Error() string {
	if e.Row >= 0 && e.Col >= 0 {
		return fmt.Sprintf("%s: %s=%g at [%d,%d] %s", ErrInvalidParameter, e.Field, e.Value, e.Row, e.Col, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
