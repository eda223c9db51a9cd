package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic    = errors.New("invalid magic number")
	ErrTooManyDims     = errors.New("too many dimensions")
	ErrInvalidDim      = errors.New("invalid dimension")
	ErrOrderMismatch   = errors.New("order mismatch")
	ErrUnsupportedType = errors.New("unsupported element type")
	ErrTooLarge        = errors.New("matrix too large")
	ErrTruncated       = errors.New("file shorter than its header declares")
)

// FileError records the file and the stage at which loading or saving failed.
type FileError struct {
	Path string // File being read or written
	Op   string // "load", "save" or "header"
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
