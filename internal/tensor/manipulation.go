package tensor

// ViewAsOrder returns a view of order n over the same elements.
// See Spec.ViewAsOrder for the supported conversions.
func (t *Tensor[T]) ViewAsOrder(n int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.ViewAsOrder(n)
	if err != nil {
		return nil, err
	}
	return t.derive("view as order", spec)
}

// ShiftDim returns the view with dimension d moved to position pos.
func (t *Tensor[T]) ShiftDim(d, pos int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.ShiftDim(d, pos)
	if err != nil {
		return nil, err
	}
	return t.derive("shift", spec)
}

// Chunk splits the view into n views of equal size along dimension d.
// The size of d must be divisible by n. The chunks share t's storage.
//
// Example:
//
//	x, _ := tensor.New[float32](2, 3, 6)
//	parts, _ := x.Chunk(3, 2) // 3 views of shape 2x3x2
func (t *Tensor[T]) Chunk(n, d int) ([]*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	if err := t.spec.checkDim("chunk", d); err != nil {
		return nil, err
	}
	size := t.spec.dim[d]
	if n < 1 || size%n != 0 {
		return nil, newShapeError("chunk", d, ErrNarrow, "size %d is not divisible into %d chunks", size, n)
	}
	step := size / n
	parts := make([]*Tensor[T], 0, n)
	for i := 0; i < n; i++ {
		p, err := t.Narrow(d, step, i*step)
		if err != nil {
			for _, q := range parts {
				_ = q.Release()
			}
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// Cat concatenates tensors along dimension d into a new contiguous tensor.
//
// All tensors must have the same order and the same sizes except along d.
//
// Example:
//
//	a, _ := tensor.New[float32](2, 3)
//	b, _ := tensor.New[float32](2, 5)
//	c, _ := tensor.Cat([]*tensor.Tensor[float32]{a, b}, 1) // 2x8
func Cat[T any](tensors []*Tensor[T], d int) (*Tensor[T], error) {
	if len(tensors) == 0 {
		return nil, newShapeError("cat", -1, ErrShapeMismatch, "at least one tensor required")
	}
	first := tensors[0]
	if err := first.alive(); err != nil {
		return nil, err
	}
	if err := first.spec.checkDim("cat", d); err != nil {
		return nil, err
	}
	dim := first.Dim()
	total := 0
	for i, t := range tensors {
		if err := t.alive(); err != nil {
			return nil, err
		}
		if t.Order() != first.Order() {
			return nil, newShapeError("cat", -1, ErrShapeMismatch,
				"tensor %d has order %d, expected %d", i, t.Order(), first.Order())
		}
		for j := 0; j < t.Order(); j++ {
			if j != d && t.spec.dim[j] != first.spec.dim[j] {
				return nil, newShapeError("cat", j, ErrShapeMismatch,
					"tensor %d has size %d, expected %d", i, t.spec.dim[j], first.spec.dim[j])
			}
		}
		total += t.spec.dim[d]
	}
	if err := dim.SetSize(d, total); err != nil {
		return nil, err
	}
	out, err := NewFromDim[T](dim)
	if err != nil {
		return nil, err
	}

	at := 0
	for _, t := range tensors {
		n := t.spec.dim[d]
		if n == 0 {
			continue
		}
		dst, err := out.Narrow(d, n, at)
		if err == nil {
			err = Copy(dst, t)
			_ = dst.Release()
		}
		if err != nil {
			_ = out.Release()
			return nil, err
		}
		at += n
	}
	return out, nil
}
