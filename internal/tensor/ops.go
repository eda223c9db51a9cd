package tensor

// Element kernels. Every kernel walks its operands with Iter, so it works on
// contiguous and strided views alike; operands are visited in row-major order.

// Copy copies the elements of src into dst.
// Both views must hold the same number of elements; their shapes may differ.
func Copy[T any](dst, src *Tensor[T]) error {
	if err := dst.alive(); err != nil {
		return err
	}
	if err := src.alive(); err != nil {
		return err
	}
	if dst.NumElements() != src.NumElements() {
		return newShapeError("copy", -1, ErrShapeMismatch,
			"element counts differ: %d vs %d", dst.NumElements(), src.NumElements())
	}
	if dst.Contiguous() && src.Contiguous() {
		copy(dst.Data(), src.Data())
		return nil
	}
	d := dst.Iter()
	for s := src.Iter(); s.Valid(); s.Next() {
		d.Set(s.Value())
		d.Next()
	}
	return nil
}

// Fill sets every element of t to v.
func Fill[T any](t *Tensor[T], v T) error {
	if err := t.alive(); err != nil {
		return err
	}
	for it := t.Iter(); it.Valid(); it.Next() {
		it.Set(v)
	}
	return nil
}

// Clear sets every element of t to the zero value.
func Clear[T any](t *Tensor[T]) error {
	var zero T
	return Fill(t, zero)
}

// Apply replaces every element x of t with fn(x).
func Apply[T any](t *Tensor[T], fn func(T) T) error {
	if err := t.alive(); err != nil {
		return err
	}
	for it := t.Iter(); it.Valid(); it.Next() {
		it.Set(fn(it.Value()))
	}
	return nil
}

// Map2 sets every element of dst to fn(a, b) of the corresponding elements
// of a and b. The three views must have the same shape; dst may be a or b.
func Map2[T any](dst, a, b *Tensor[T], fn func(x, y T) T) error {
	for _, t := range []*Tensor[T]{dst, a, b} {
		if err := t.alive(); err != nil {
			return err
		}
	}
	if !a.SameShape(b) || !dst.SameShape(a) {
		return newShapeError("map", -1, ErrShapeMismatch,
			"shapes %s, %s -> %s", a.Dim(), b.Dim(), dst.Dim())
	}
	ia, ib := a.Iter(), b.Iter()
	for id := dst.Iter(); id.Valid(); id.Next() {
		id.Set(fn(ia.Value(), ib.Value()))
		ia.Next()
		ib.Next()
	}
	return nil
}

// arith returns op for T. Float16 values are computed in float64 since
// their Go representation is a bit pattern.
func arith[T DType](op func(x, y T) T, op64 func(x, y float64) float64) func(x, y T) T {
	if DataTypeOf[T]() == Float16Type {
		return func(x, y T) T { return FromFloat64[T](op64(ToFloat64(x), ToFloat64(y))) }
	}
	return op
}

// Add stores a + b into dst element-wise.
func Add[T DType](dst, a, b *Tensor[T]) error {
	return Map2(dst, a, b, arith(
		func(x, y T) T { return x + y },
		func(x, y float64) float64 { return x + y }))
}

// Sub stores a - b into dst element-wise.
func Sub[T DType](dst, a, b *Tensor[T]) error {
	return Map2(dst, a, b, arith(
		func(x, y T) T { return x - y },
		func(x, y float64) float64 { return x - y }))
}

// Mul stores a * b into dst element-wise.
func Mul[T DType](dst, a, b *Tensor[T]) error {
	return Map2(dst, a, b, arith(
		func(x, y T) T { return x * y },
		func(x, y float64) float64 { return x * y }))
}

// Sum returns the sum of the elements of t, accumulated in float64.
func Sum[T DType](t *Tensor[T]) (float64, error) {
	if err := t.alive(); err != nil {
		return 0, err
	}
	var s float64
	for it := t.Iter(); it.Valid(); it.Next() {
		s += ToFloat64(it.Value())
	}
	return s, nil
}

// Dot returns the sum of the element-wise products of a and b,
// accumulated in float64. a and b must have the same shape.
func Dot[T DType](a, b *Tensor[T]) (float64, error) {
	if err := a.alive(); err != nil {
		return 0, err
	}
	if err := b.alive(); err != nil {
		return 0, err
	}
	if !a.SameShape(b) {
		return 0, newShapeError("dot", -1, ErrShapeMismatch, "shapes %s and %s", a.Dim(), b.Dim())
	}
	var s float64
	ib := b.Iter()
	for ia := a.Iter(); ia.Valid(); ia.Next() {
		s += ToFloat64(ia.Value()) * ToFloat64(ib.Value())
		ib.Next()
	}
	return s, nil
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T comparable](a, b *Tensor[T]) bool {
	if a.alive() != nil || b.alive() != nil || !a.SameShape(b) {
		return false
	}
	ib := b.Iter()
	for ia := a.Iter(); ia.Valid(); ia.Next() {
		if ia.Value() != ib.Value() {
			return false
		}
		ib.Next()
	}
	return true
}
