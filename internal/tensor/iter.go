package tensor

import "iter"

// Iterator walks the elements of a view in row-major order, the last
// dimension varying fastest. Iterators are single-pass and forward-only.
//
// Typical use:
//
//	for it := t.Iter(); it.Valid(); it.Next() {
//		it.Set(it.Value() * 2)
//	}
type Iterator[T any] interface {
	// Valid reports whether the iterator points at an element.
	Valid() bool
	// Next advances to the next element.
	Next()
	// Value returns the current element.
	Value() T
	// Set overwrites the current element.
	Set(v T)
	// Ptr returns the address of the current element.
	Ptr() *T
	// Offset returns the storage position of the current element.
	Offset() int
	// Len returns the total number of elements visited by the iterator.
	Len() int
}

// contiguousIter walks a contiguous run with a unit stride.
type contiguousIter[T any] struct {
	data  []T
	cur   int
	end   int
	count int
}

// NewContiguousIter returns an iterator advancing by a unit stride over a
// contiguous view. It fails with ErrNotContiguous otherwise.
func NewContiguousIter[T any](t *Tensor[T]) (Iterator[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	if !t.Contiguous() {
		return nil, newShapeError("iterate", -1, ErrNotContiguous, "strides %v", t.Strides())
	}
	return newContiguousIter(t), nil
}

func newContiguousIter[T any](t *Tensor[T]) *contiguousIter[T] {
	n := t.NumElements()
	return &contiguousIter[T]{
		data:  t.storage.data,
		cur:   t.spec.offset,
		end:   t.spec.offset + n,
		count: n,
	}
}

func (it *contiguousIter[T]) Valid() bool { return it.cur < it.end }
func (it *contiguousIter[T]) Next() { it.cur++ }
func (it *contiguousIter[T]) Value() T { return it.data[it.cur] }
func (it *contiguousIter[T]) Set(v T) { it.data[it.cur] = v }
func (it *contiguousIter[T]) Ptr() *T { return &it.data[it.cur] }
func (it *contiguousIter[T]) Offset() int { return it.cur }
func (it *contiguousIter[T]) Len() int { return it.count }

// stridedIter walks any view with one counter per dimension.
// On carry, the position is moved back by the span of the wrapped dimension.
type stridedIter[T any] struct {
	data  []T
	spec  Spec
	idx   [MaxOrder]int
	cur   int
	left  int
	count int
}

// NewStridedIter returns an iterator over any view, contiguous or not.
func NewStridedIter[T any](t *Tensor[T]) (Iterator[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	return newStridedIter(t), nil
}

func newStridedIter[T any](t *Tensor[T]) *stridedIter[T] {
	n := t.NumElements()
	return &stridedIter[T]{
		data:  t.storage.data,
		spec:  t.spec,
		cur:   t.spec.offset,
		left:  n,
		count: n,
	}
}

func (it *stridedIter[T]) Valid() bool { return it.left > 0 }

func (it *stridedIter[T]) Next() {
	it.left--
	if it.left <= 0 {
		return
	}
	s := &it.spec
	for j := s.order - 1; j >= 0; j-- {
		it.idx[j]++
		it.cur += s.mod[j]
		if it.idx[j] < s.dim[j] {
			return
		}
		it.cur -= s.dim[j] * s.mod[j]
		it.idx[j] = 0
	}
}

func (it *stridedIter[T]) Value() T { return it.data[it.cur] }
func (it *stridedIter[T]) Set(v T) { it.data[it.cur] = v }
func (it *stridedIter[T]) Ptr() *T { return &it.data[it.cur] }
func (it *stridedIter[T]) Offset() int { return it.cur }
func (it *stridedIter[T]) Len() int { return it.count }

// Iter returns the fastest iterator for the view's layout: a unit-stride
// iterator when the view is contiguous, a strided one otherwise.
// A released view yields no elements.
func (t *Tensor[T]) Iter() Iterator[T] {
	if t.alive() != nil {
		return &contiguousIter[T]{}
	}
	if t.Contiguous() {
		return newContiguousIter(t)
	}
	return newStridedIter(t)
}

// All returns an iterator over (position, element) pairs in row-major
// order, where position counts from 0.
func (t *Tensor[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for it := t.Iter(); it.Valid(); it.Next() {
			if !yield(i, it.Value()) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements in row-major order.
func (t *Tensor[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.Iter(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Indices returns an iterator over every index tuple of the view in
// row-major order. The yielded slice is reused between iterations and must
// not be modified or retained.
func (t *Tensor[T]) Indices() iter.Seq[[]int] {
	s := t.spec
	return func(yield func([]int) bool) {
		if s.NumElements() == 0 {
			return
		}
		indices := make([]int, s.order)
		for {
			if !yield(indices) {
				return
			}
			axis := s.order - 1
			for ; axis >= 0; axis-- {
				indices[axis]++
				if indices[axis] < s.dim[axis] {
					break
				}
				indices[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
