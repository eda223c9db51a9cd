// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/idx/internal/parallel"
	"github.com/born-ml/idx/internal/tensor"
)

// MaxOrder is the maximum number of dimensions a tensor can have.
const MaxOrder = tensor.MaxOrder

// Type aliases for public API

// DType is a constraint for the numeric element types.
// Supported types: uint8, int8, int16, int32, int64, uint16, uint32, Float16, float32, float64.
type DType = tensor.DType

// Float16 is the IEEE 754 half-precision element type.
type Float16 = tensor.Float16

// DataType represents the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Unknown     DataType = tensor.Unknown
	Uint8       DataType = tensor.Uint8
	Int8        DataType = tensor.Int8
	Int16       DataType = tensor.Int16
	Int32       DataType = tensor.Int32
	Int64       DataType = tensor.Int64
	Uint16      DataType = tensor.Uint16
	Uint32      DataType = tensor.Uint32
	Float16Type DataType = tensor.Float16Type
	Float32     DataType = tensor.Float32
	Float64     DataType = tensor.Float64
)

// DataTypeOf returns the DataType of T, or Unknown.
func DataTypeOf[T any]() DataType {
	return tensor.DataTypeOf[T]()
}

// Storage is a reference-counted element buffer shared by views.
type Storage[T any] = tensor.Storage[T]

// Spec describes the order, offset, sizes and strides of a view.
type Spec = tensor.Spec

// Dim is a list of dimension sizes without strides.
type Dim = tensor.Dim

// Tensor is a strided view over a Storage.
//
// Example:
//
//	x, _ := tensor.New[float32](4, 4)
//	row, _ := x.Select(0, 1) // shares x's storage
//	row.Set(42, 3)           // x.At(1, 3) == 42
type Tensor[T any] = tensor.Tensor[T]

// Iterator walks the elements of a view in row-major order.
type Iterator[T any] = tensor.Iterator[T]

// Looper walks the sub-views of a tensor along one dimension.
type Looper[T any] = tensor.Looper[T]

// Storage and descriptors

// NewStorage allocates a zero-filled storage of n elements.
func NewStorage[T any](n int) (*Storage[T], error) {
	return tensor.NewStorage[T](n)
}

// WrapStorage returns a storage over data without copying it.
func WrapStorage[T any](data []T) *Storage[T] {
	return tensor.WrapStorage(data)
}

// NewSpec creates a contiguous row-major Spec.
func NewSpec(offset int, sizes ...int) (Spec, error) {
	return tensor.NewSpec(offset, sizes...)
}

// NewSpecStrided creates a Spec with explicit sizes and strides.
func NewSpecStrided(offset int, sizes, strides []int) (Spec, error) {
	return tensor.NewSpecStrided(offset, sizes, strides)
}

// NewDim creates a Dim with the given sizes.
func NewDim(sizes ...int) (Dim, error) {
	return tensor.NewDim(sizes...)
}

// Creation functions

// New creates a zero-filled tensor with the given sizes.
//
// Example:
//
//	x, err := tensor.New[float32](2, 3)
func New[T any](sizes ...int) (*Tensor[T], error) {
	return tensor.New[T](sizes...)
}

// NewFromDim creates a zero-filled tensor with the shape of d.
func NewFromDim[T any](d Dim) (*Tensor[T], error) {
	return tensor.NewFromDim[T](d)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
func FromSlice[T any](data []T, sizes ...int) (*Tensor[T], error) {
	return tensor.FromSlice(data, sizes...)
}

// Bind creates a contiguous view over st starting at offset, growing st when needed.
func Bind[T any](st *Storage[T], offset int, sizes ...int) (*Tensor[T], error) {
	return tensor.Bind(st, offset, sizes...)
}

// BindSpec creates a view with geometry spec over st, growing st when needed.
func BindSpec[T any](st *Storage[T], spec Spec) (*Tensor[T], error) {
	return tensor.BindSpec(st, spec)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](sizes ...int) (*Tensor[T], error) {
	return tensor.Zeros[T](sizes...)
}

// Ones creates a tensor filled with ones.
func Ones[T DType](sizes ...int) (*Tensor[T], error) {
	return tensor.Ones[T](sizes...)
}

// Full creates a tensor filled with value.
//
// Example:
//
//	x, err := tensor.Full[float32](3.14, 2, 3)
func Full[T DType](value T, sizes ...int) (*Tensor[T], error) {
	return tensor.Full(value, sizes...)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
//
// Example:
//
//	x, err := tensor.Arange[float32](0, 10) // [0, 1, 2, ..., 9]
func Arange[T DType](start, end T) (*Tensor[T], error) {
	return tensor.Arange(start, end)
}

// Eye creates an n×n identity matrix.
func Eye[T DType](n int) (*Tensor[T], error) {
	return tensor.Eye[T](n)
}

// Rand creates a floating-point tensor with values drawn uniformly from [0, 1).
func Rand[T DType](r *rand.Rand, sizes ...int) (*Tensor[T], error) {
	return tensor.Rand[T](r, sizes...)
}

// Randn creates a floating-point tensor with values drawn from N(0, 1).
func Randn[T DType](r *rand.Rand, sizes ...int) (*Tensor[T], error) {
	return tensor.Randn[T](r, sizes...)
}

// Manipulation functions

// Cat concatenates tensors along dimension d into a new tensor.
func Cat[T any](tensors []*Tensor[T], d int) (*Tensor[T], error) {
	return tensor.Cat(tensors, d)
}

// SameShape reports whether a and b have the same order and sizes.
func SameShape[A, B any](a *Tensor[A], b *Tensor[B]) bool {
	return tensor.SameShape(a, b)
}

// Iteration

// NewContiguousIter returns a linear iterator over t, which must be contiguous.
func NewContiguousIter[T any](t *Tensor[T]) (Iterator[T], error) {
	return tensor.NewContiguousIter(t)
}

// NewStridedIter returns an odometer iterator over t.
func NewStridedIter[T any](t *Tensor[T]) (Iterator[T], error) {
	return tensor.NewStridedIter(t)
}

// NewLooper returns a Looper over the sub-views of t along dimension d.
func NewLooper[T any](t *Tensor[T], d int) (*Looper[T], error) {
	return tensor.NewLooper(t, d)
}

// ForEachSlice calls fn for every sub-view of t along dimension d.
func ForEachSlice[T any](t *Tensor[T], d int, fn func(i int, slice *Tensor[T]) error) error {
	return tensor.ForEachSlice(t, d, fn)
}

// Parallel execution

// ParallelConfig controls how ParallelForEachSlice and ParallelApply spread work.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// ParallelForEachSlice calls fn concurrently for every sub-view of t along dimension d.
func ParallelForEachSlice[T any](t *Tensor[T], d int, fn func(i int, slice *Tensor[T]) error, cfg ParallelConfig) error {
	return parallel.ForEachSlice(t, d, fn, cfg)
}

// ParallelApply replaces every element x of t with fn(x), splitting the work along dimension 0.
func ParallelApply[T any](t *Tensor[T], fn func(T) T, cfg ParallelConfig) error {
	return parallel.Apply(t, fn, cfg)
}
