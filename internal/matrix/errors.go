package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape indicates a requested dimension below one.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside [0, n).
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates operands of different sizes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates a nil receiver or operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// IndexError carries the offending coordinates of an out-of-range access.
type IndexError struct {
	Row, Col int
	Size     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("matrix: index (%d,%d) out of range for size %d", e.Row, e.Col, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
