package matrix

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/idx/internal/tensor"
)

// Magic numbers of the native header.
const (
	MagicFloatMatrix   int32 = 0x1e3d4c51
	MagicDoubleMatrix  int32 = 0x1e3d4c53
	MagicIntegerMatrix int32 = 0x1e3d4c54
	MagicByteMatrix    int32 = 0x1e3d4c55
	MagicShortMatrix   int32 = 0x1e3d4c56
	MagicLongMatrix    int32 = 0x1e3d4c58
	MagicUintMatrix    int32 = 0x1e3d4c59
	MagicHalfMatrix    int32 = 0x1e3d4c5a
)

// Type codes of the IDX header, stored in bits 8-15 of its first word.
const (
	IDXUbyte   byte = 0x08
	IDXInt8    byte = 0x09
	IDXInt16   byte = 0x0B
	IDXInt32   byte = 0x0C
	IDXFloat32 byte = 0x0D
	IDXFloat64 byte = 0x0E
)

// MinHeaderDims is the number of extents a native header always carries.
const MinHeaderDims = 3

var nativeTypes = map[int32]tensor.DataType{
	MagicByteMatrix:    tensor.Uint8,
	MagicShortMatrix:   tensor.Int16,
	MagicIntegerMatrix: tensor.Int32,
	MagicUintMatrix:    tensor.Uint32,
	MagicLongMatrix:    tensor.Int64,
	MagicHalfMatrix:    tensor.Float16Type,
	MagicFloatMatrix:   tensor.Float32,
	MagicDoubleMatrix:  tensor.Float64,
}

var idxTypes = map[byte]tensor.DataType{
	IDXUbyte:   tensor.Uint8,
	IDXInt8:    tensor.Int8,
	IDXInt16:   tensor.Int16,
	IDXInt32:   tensor.Int32,
	IDXFloat32: tensor.Float32,
	IDXFloat64: tensor.Float64,
}

// typeNames lists the names accepted by ParseType, in display order.
var typeNames = []struct {
	name string
	dt   tensor.DataType
}{
	{"ubyte", tensor.Uint8},
	{"short", tensor.Int16},
	{"int", tensor.Int32},
	{"uint", tensor.Uint32},
	{"long", tensor.Int64},
	{"half", tensor.Float16Type},
	{"float", tensor.Float32},
	{"double", tensor.Float64},
}

// MagicOf returns the native magic number for dt.
func MagicOf(dt tensor.DataType) (int32, error) {
	for magic, t := range nativeTypes {
		if t == dt {
			return magic, nil
		}
	}
	return 0, fmt.Errorf("%w: no matrix magic for %s", ErrUnsupportedType, dt)
}

// ParseType returns the element type named by s ("ubyte", "int", "float", ...).
func ParseType(s string) (tensor.DataType, error) {
	for _, tn := range typeNames {
		if tn.name == s {
			return tn.dt, nil
		}
	}
	return tensor.Unknown, fmt.Errorf("%w: %q (want one of %v)", ErrUnsupportedType, s, TypeNames())
}

// TypeName returns the matrix name of dt, or dt.String() when it has none.
func TypeName(dt tensor.DataType) string {
	for _, tn := range typeNames {
		if tn.dt == dt {
			return tn.name
		}
	}
	return dt.String()
}

// TypeNames returns the names accepted by ParseType.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for _, tn := range typeNames {
		names = append(names, tn.name)
	}
	return names
}

// Header describes the element type and extents stored in a matrix file.
type Header struct {
	Type      tensor.DataType
	Dims      []int
	IDX       bool             // IDX (big-endian, read-only) header
	ByteOrder binary.ByteOrder // Byte order of the extents and the payload
}

// Order returns the number of dimensions.
func (h *Header) Order() int { return len(h.Dims) }

// NumElements returns the number of elements in the payload.
func (h *Header) NumElements() int {
	n := 1
	for _, d := range h.Dims {
		n *= d
	}
	return n
}

// Size returns the size of the header in bytes.
func (h *Header) Size() int64 {
	if h.IDX {
		return int64(4 + 4*len(h.Dims))
	}
	return int64(8 + 4*max(len(h.Dims), MinHeaderDims))
}

// PayloadSize returns the size of the payload in bytes.
func (h *Header) PayloadSize() int64 {
	return int64(h.NumElements()) * int64(h.Type.Size())
}

// String returns a short description such as "float 3x4".
func (h *Header) String() string {
	kind := TypeName(h.Type)
	if h.IDX {
		kind += " (idx)"
	}
	if len(h.Dims) == 0 {
		return kind + " scalar"
	}
	return fmt.Sprintf("%s %s", kind, dimString(h.Dims))
}

func dimString(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}
