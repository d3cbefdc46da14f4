package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a matrix shape is invalid for the requested operation:
	// zero or negative dimensions, data length mismatch, incompatible operands or a non-square inverse.
	ErrInvalidDimension = errors.New("matrix: invalid dimension")
	// ErrOutOfBounds is returned when a row or column index is outside of the matrix.
	ErrOutOfBounds = errors.New("matrix: index out of bounds")
	// ErrSingular is returned when a matrix can not be inverted.
	ErrSingular = errors.New("matrix: matrix not invertible")
	// ErrDivideByZero is returned when a matrix is divided by zero scalar.
	ErrDivideByZero = errors.New("matrix: division by zero")
)

// operation tags used when wrapping errors
const (
	opNew      = "New"
	opAt       = "At"
	opSet      = "Set"
	opAdd      = "Add"
	opMul      = "Mul"
	opDiv      = "Div"
	opInv      = "Inv"
	opTrace    = "Trace"
	opScaleRow = "ScaleRow"
	opSwapRows = "SwapRows"
)

// opErrorf wraps err with operation op and formatted details.
// err must not be nil.
func opErrorf(op string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
