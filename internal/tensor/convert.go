package tensor

import "github.com/x448/float16"

// ToFloat64 converts an element to float64.
// Float16 values are decoded from their bit pattern.
func ToFloat64[T DType](v T) float64 {
	if h, ok := any(v).(Float16); ok {
		return float64(h.Float32())
	}
	return float64(v)
}

// FromFloat64 converts a float64 to an element of type T.
// Conversion to integer types truncates toward zero.
func FromFloat64[T DType](f float64) T {
	var zero T
	if _, ok := any(zero).(Float16); ok {
		return any(float16.Fromfloat32(float32(f))).(T)
	}
	return T(f)
}

// Convert converts an element of type S to type D.
// Integer to integer conversions are exact when the value fits in D.
func Convert[D, S DType](v S) D {
	if DataTypeOf[S]() != Float16Type && DataTypeOf[D]() != Float16Type {
		return D(v)
	}
	return FromFloat64[D](ToFloat64(v))
}

// ConvertTo copies src into dst element by element, converting types.
// Both tensors must hold the same number of elements; they are walked in
// logical row-major order.
func ConvertTo[D, S DType](dst *Tensor[D], src *Tensor[S]) error {
	if err := dst.alive(); err != nil {
		return err
	}
	if err := src.alive(); err != nil {
		return err
	}
	if dst.NumElements() != src.NumElements() {
		return newShapeError("convert", -1, ErrShapeMismatch,
			"element counts differ: %d vs %d", dst.NumElements(), src.NumElements())
	}
	d := dst.Iter()
	for s := src.Iter(); s.Valid(); s.Next() {
		d.Set(Convert[D](s.Value()))
		d.Next()
	}
	return nil
}
