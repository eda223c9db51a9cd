package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t, err := tensor.Zeros[float32](3, 4)
func Zeros[T DType](sizes ...int) (*Tensor[T], error) {
	// Data is already zero-initialized by make()
	return New[T](sizes...)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t, err := tensor.Ones[float64](2, 3)
func Ones[T DType](sizes ...int) (*Tensor[T], error) {
	return Full(FromFloat64[T](1), sizes...)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t, err := tensor.Full[float32](3.14, 3, 3)
func Full[T DType](value T, sizes ...int) (*Tensor[T], error) {
	t, err := New[T](sizes...)
	if err != nil {
		return nil, err
	}
	data := t.storage.data
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Arange creates a 1D tensor with values from start to end (exclusive),
// incremented by one.
//
// Example:
//
//	t, err := tensor.Arange[int32](0, 10) // [0, 1, 2, ..., 9]
func Arange[T DType](start, end T) (*Tensor[T], error) {
	lo, hi := ToFloat64(start), ToFloat64(end)
	if hi <= lo {
		return nil, newShapeError("arange", -1, ErrSize, "end %v must be greater than start %v", end, start)
	}
	n := int(hi - lo)
	if float64(n) < hi-lo {
		n++
	}
	t, err := New[T](n)
	if err != nil {
		return nil, err
	}
	data := t.storage.data
	for i := range data {
		data[i] = FromFloat64[T](lo + float64(i))
	}
	return t, nil
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	t, err := tensor.Eye[float32](3) // 3x3 identity matrix
func Eye[T DType](n int) (*Tensor[T], error) {
	t, err := New[T](n, n)
	if err != nil {
		return nil, err
	}
	one := FromFloat64[T](1)
	for i := 0; i < n; i++ {
		t.storage.data[i*n+i] = one
	}
	return t, nil
}

// Rand creates a tensor with random values uniformly distributed in [0, 1)
// drawn from r. Only floating-point element types are supported.
//
// Example:
//
//	r := rand.New(rand.NewSource(42))
//	t, err := tensor.Rand[float32](r, 10, 10)
func Rand[T DType](r *rand.Rand, sizes ...int) (*Tensor[T], error) {
	return random[T]("rand", r.Float64, sizes)
}

// Randn creates a tensor with values drawn from r following a normal
// distribution (mean=0, std=1). Only floating-point element types are supported.
//
// Example:
//
//	t, err := tensor.Randn[float64](rand.New(rand.NewSource(1)), 100, 100)
func Randn[T DType](r *rand.Rand, sizes ...int) (*Tensor[T], error) {
	return random[T]("randn", r.NormFloat64, sizes)
}

func random[T DType](op string, next func() float64, sizes []int) (*Tensor[T], error) {
	if dt := DataTypeOf[T](); !dt.IsFloat() {
		return nil, newShapeError(op, -1, ErrDType, "%s is not a floating-point type", dt)
	}
	t, err := New[T](sizes...)
	if err != nil {
		return nil, err
	}
	data := t.storage.data
	for i := range data {
		data[i] = FromFloat64[T](next())
	}
	return t, nil
}
