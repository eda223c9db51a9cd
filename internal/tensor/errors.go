package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrOrder         = errors.New("invalid order")
	ErrDimension     = errors.New("invalid dimension index")
	ErrIndex         = errors.New("index out of range")
	ErrSize          = errors.New("invalid dimension size")
	ErrNarrow        = errors.New("invalid narrow size/offset")
	ErrUnfold        = errors.New("invalid unfold kernel/step")
	ErrPermutation   = errors.New("invalid permutation")
	ErrNotContiguous = errors.New("tensor is not contiguous")
	ErrShapeMismatch = errors.New("tensor shapes are incompatible")
	ErrFootprint     = errors.New("footprint exceeds storage capacity")
	ErrOffset        = errors.New("invalid offset")
	ErrAlloc         = errors.New("cannot allocate storage")
	ErrRefCount      = errors.New("storage reference count underflow")
	ErrReleased      = errors.New("tensor has been released")
	ErrDType         = errors.New("unsupported element type")
)

// ShapeError describes an invariant violation detected by a shape or view operation.
type ShapeError struct {
	Op      string // Operation that failed (e.g., "select", "narrow")
	Dim     int    // Dimension involved, or -1
	Details string // Additional details
	Err     error  // Underlying sentinel error
}

func newShapeError(op string, dim int, err error, format string, args ...any) *ShapeError {
	return &ShapeError{
		Op:      op,
		Dim:     dim,
		Details: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Dim >= 0 {
		return fmt.Sprintf("%s: dimension %d: %v: %s", e.Op, e.Dim, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
}

// Unwrap returns the underlying sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}
