// Package tensor provides strided, reference-counted views over flat element buffers.
//
// A Tensor is a shape descriptor (Spec) bound to a Storage. Views produced by
// Select, Narrow, Transpose, Unfold and friends share the storage of the tensor
// they were derived from; no elements are copied.
package tensor

import "github.com/x448/float16"

// MaxOrder is the maximum number of dimensions a tensor can have.
const MaxOrder = 8

// Float16 is the IEEE 754 half-precision element type.
type Float16 = float16.Float16

// DType is a constraint for the numeric element types supported by kernels,
// the printer and the matrix codec. Storage and views accept any element type.
type DType interface {
	~float32 | ~float64 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Unknown DataType = iota
	Uint8
	Int8
	Int16
	Int32
	Int64
	Uint16
	Uint32
	Float16Type
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Uint8, Int8:
		return 1
	case Int16, Uint16, Float16Type:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Float16Type:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float16Type || dt == Float32 || dt == Float64
}

// DataTypeOf returns the runtime data type of T.
// Named types are matched on their exact type, so Float16 is reported as
// Float16Type rather than as its uint16 representation.
func DataTypeOf[T any]() DataType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case Float16:
		return Float16Type
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return Unknown
	}
}
