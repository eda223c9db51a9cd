package tensor

// Looper walks one dimension of a view and exposes, at each step, the
// sub-view of order-1 at the current index.
//
// The sub-view is a single tensor whose offset is moved at every step; callers
// that need to keep a slice beyond the current step must take a View or Clone
// of it. The looper holds a lock on the storage until Release is called.
// Releasing the sub-view ends the loop early, which Err reports.
//
//	lp, _ := tensor.NewLooper(batch, 0)
//	defer lp.Release()
//	for ; lp.Valid(); lp.Next() {
//		sample := lp.View()
//		...
//	}
//	if err := lp.Err(); err != nil {
//		...
//	}
type Looper[T any] struct {
	view   *Tensor[T]
	dim    int
	index  int
	size   int
	stride int
}

// NewLooper returns a looper over dimension d of t.
func NewLooper[T any](t *Tensor[T], d int) (*Looper[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	if err := t.spec.checkDim("loop", d); err != nil {
		return nil, err
	}
	lp := &Looper[T]{
		dim:    d,
		size:   t.spec.dim[d],
		stride: t.spec.mod[d],
	}
	if lp.size == 0 {
		return lp, nil
	}
	v, err := t.Select(d, 0)
	if err != nil {
		return nil, err
	}
	lp.view = v
	return lp, nil
}

// Valid reports whether the looper points at a slice.
func (lp *Looper[T]) Valid() bool {
	return lp.index < lp.size && lp.view != nil && !lp.view.released
}

// Next moves to the next slice.
func (lp *Looper[T]) Next() {
	lp.index++
	if lp.index < lp.size {
		lp.view.spec.offset += lp.stride
	}
}

// View returns the slice at the current index.
func (lp *Looper[T]) View() *Tensor[T] { return lp.view }

// Index returns the current index along the looped dimension.
func (lp *Looper[T]) Index() int { return lp.index }

// Dim returns the looped dimension.
func (lp *Looper[T]) Dim() int { return lp.dim }

// Err returns ErrReleased if the sub-view was released before the loop
// reached the end of the dimension.
func (lp *Looper[T]) Err() error {
	if lp.view != nil && lp.view.released && lp.index < lp.size {
		return newShapeError("loop", lp.dim, ErrReleased,
			"slice released, stopped at index %d of %d", lp.index, lp.size)
	}
	return nil
}

// Release drops the looper's lock on the storage. It is a no-op if the
// sub-view was already released.
func (lp *Looper[T]) Release() error {
	if lp.view == nil || lp.view.released {
		return nil
	}
	return lp.view.Release()
}

// ForEachSlice calls fn with every slice of t along dimension d.
// Iteration stops at the first error returned by fn. The slice is shared
// between calls and must not be released by fn.
func ForEachSlice[T any](t *Tensor[T], d int, fn func(i int, slice *Tensor[T]) error) error {
	lp, err := NewLooper(t, d)
	if err != nil {
		return err
	}
	defer lp.Release() //nolint:errcheck // looper lock is released exactly once here
	for ; lp.Valid(); lp.Next() {
		if err := fn(lp.Index(), lp.View()); err != nil {
			return err
		}
	}
	return lp.Err()
}
