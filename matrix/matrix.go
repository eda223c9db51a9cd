// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix reads and writes tensors in the matrix file format.
//
// Files carry a small header (element type, order, extents) followed by the
// elements in row-major order. Any view can be written, whatever its strides.
//
// Example:
//
//	x, err := matrix.Load[float32]("weights.mat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer x.Release()
package matrix

import (
	"io"

	"github.com/born-ml/idx/internal/matrix"
	"github.com/born-ml/idx/tensor"
)

// Header describes the element type and extents stored in a matrix file.
type Header = matrix.Header

// FileError records the file and the stage at which loading or saving failed.
type FileError = matrix.FileError

// Errors returned while decoding or encoding matrix files.
var (
	ErrInvalidMagic    = matrix.ErrInvalidMagic
	ErrTooManyDims     = matrix.ErrTooManyDims
	ErrInvalidDim      = matrix.ErrInvalidDim
	ErrOrderMismatch   = matrix.ErrOrderMismatch
	ErrUnsupportedType = matrix.ErrUnsupportedType
	ErrTooLarge        = matrix.ErrTooLarge
	ErrTruncated       = matrix.ErrTruncated
)

// ReadHeader reads a native or IDX header from r.
func ReadHeader(r io.Reader) (*Header, error) { return matrix.ReadHeader(r) }

// Read reads a matrix from r into a new tensor, converting elements to T.
func Read[T tensor.DType](r io.Reader) (*tensor.Tensor[T], error) { return matrix.Read[T](r) }

// ReadInto reads a matrix from r into t, resizing t to the file's extents.
func ReadInto[T tensor.DType](r io.Reader, t *tensor.Tensor[T]) error { return matrix.ReadInto(r, t) }

// Write writes t to w in the native format.
func Write[T tensor.DType](w io.Writer, t *tensor.Tensor[T]) error { return matrix.Write(w, t) }

// Load reads the matrix file at path into a new tensor.
func Load[T tensor.DType](path string) (*tensor.Tensor[T], error) { return matrix.Load[T](path) }

// LoadInto reads the matrix file at path into t.
func LoadInto[T tensor.DType](path string, t *tensor.Tensor[T]) error {
	return matrix.LoadInto(path, t)
}

// Save writes t to the file at path.
func Save[T tensor.DType](path string, t *tensor.Tensor[T]) error { return matrix.Save(path, t) }

// LoadHeader reads only the header of the matrix file at path.
func LoadHeader(path string) (*Header, error) { return matrix.LoadHeader(path) }

// TypeOf returns the element type stored in the matrix file at path.
func TypeOf(path string) (tensor.DataType, error) { return matrix.TypeOf(path) }

// Checksum returns the SHA-256 of the native encoding of t, independent of its strides.
func Checksum[T tensor.DType](t *tensor.Tensor[T]) ([32]byte, error) { return matrix.Checksum(t) }

// ChecksumFile returns the SHA-256 of the file at path.
func ChecksumFile(path string) ([32]byte, error) { return matrix.ChecksumFile(path) }

// ParseType returns the element type named by s ("ubyte", "int", "float", ...).
func ParseType(s string) (tensor.DataType, error) { return matrix.ParseType(s) }

// TypeNames returns the names accepted by ParseType.
func TypeNames() []string { return matrix.TypeNames() }

// TypeName returns the matrix name of dt.
func TypeName(dt tensor.DataType) string { return matrix.TypeName(dt) }
