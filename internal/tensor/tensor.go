package tensor

import (
	"fmt"
	"strings"

	"github.com/born-ml/idx/internal/envconfig"
)

// Tensor is a view binding a Spec to a Storage.
//
// Several tensors may share the same storage with different geometries;
// writes through one view are visible through every view addressing the
// same elements. A tensor holds a lock on its storage until Release is called.
//
// Example:
//
//	t, _ := tensor.New[float32](4, 4)
//	row, _ := t.Select(0, 1) // shares t's storage
//	row.Set(42, 3)           // t.At(1, 3) == 42
type Tensor[T any] struct {
	storage  *Storage[T]
	spec     Spec
	released bool
}

// New creates a tensor with the given sizes over a new zero-filled storage.
func New[T any](sizes ...int) (*Tensor[T], error) {
	spec, err := NewSpec(0, sizes...)
	if err != nil {
		return nil, err
	}
	return newWithSpec[T](spec)
}

// NewFromDim creates a tensor with the shape of d over a new storage.
func NewFromDim[T any](d Dim) (*Tensor[T], error) {
	return New[T](d.Sizes()...)
}

func newWithSpec[T any](spec Spec) (*Tensor[T], error) {
	st, err := NewStorage[T](spec.Footprint())
	if err != nil {
		return nil, err
	}
	return BindSpec(st, spec)
}

// FromSlice creates a tensor with the given sizes holding a copy of data.
func FromSlice[T any](data []T, sizes ...int) (*Tensor[T], error) {
	t, err := New[T](sizes...)
	if err != nil {
		return nil, err
	}
	if t.NumElements() != len(data) {
		_ = t.Release()
		return nil, newShapeError("from slice", -1, ErrShapeMismatch,
			"sizes %v require %d elements, got %d", sizes, t.NumElements(), len(data))
	}
	copy(t.storage.data, data)
	return t, nil
}

// Bind creates a contiguous view over st starting at offset.
// The storage is grown if the view's footprint exceeds its size.
func Bind[T any](st *Storage[T], offset int, sizes ...int) (*Tensor[T], error) {
	spec, err := NewSpec(offset, sizes...)
	if err != nil {
		return nil, err
	}
	return BindSpec(st, spec)
}

// BindDim creates a contiguous view over st with the shape of d.
func BindDim[T any](st *Storage[T], offset int, d Dim) (*Tensor[T], error) {
	return Bind(st, offset, d.Sizes()...)
}

// BindSpec creates a view with an explicit geometry over st.
// The storage is grown if the view's footprint exceeds its size.
func BindSpec[T any](st *Storage[T], spec Spec) (*Tensor[T], error) {
	if st == nil {
		return nil, fmt.Errorf("bind: %w: nil storage", ErrAlloc)
	}
	if _, err := st.GrowChunk(spec.Footprint(), 0); err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	if _, err := st.Lock(); err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	return &Tensor[T]{storage: st, spec: spec}, nil
}

// derive creates a view over t's storage with another geometry.
// The footprint is checked before the view can access any element.
func (t *Tensor[T]) derive(op string, spec Spec) (*Tensor[T], error) {
	if err := spec.checkFootprint(op, t.storage.Size()); err != nil {
		return nil, err
	}
	if _, err := t.storage.Lock(); err != nil {
		return nil, err
	}
	return &Tensor[T]{storage: t.storage, spec: spec}, nil
}

func (t *Tensor[T]) alive() error {
	if t == nil || t.released || t.storage == nil {
		return ErrReleased
	}
	return nil
}

// Order returns the number of dimensions.
func (t *Tensor[T]) Order() int { return t.spec.Order() }

// Size returns the size of dimension d.
func (t *Tensor[T]) Size(d int) int { return t.spec.Size(d) }

// Stride returns the stride of dimension d.
func (t *Tensor[T]) Stride(d int) int { return t.spec.Stride(d) }

// Sizes returns the sizes of all dimensions.
func (t *Tensor[T]) Sizes() []int { return t.spec.Sizes() }

// Strides returns the strides of all dimensions.
func (t *Tensor[T]) Strides() []int { return t.spec.Strides() }

// Offset returns the storage position of the first element.
func (t *Tensor[T]) Offset() int { return t.spec.Offset() }

// NumElements returns the number of elements of the view.
func (t *Tensor[T]) NumElements() int { return t.spec.NumElements() }

// Footprint returns the minimum storage size the view requires.
func (t *Tensor[T]) Footprint() int { return t.spec.Footprint() }

// Contiguous reports whether the view's elements form one row-major run.
func (t *Tensor[T]) Contiguous() bool { return t.spec.Contiguous() }

// Spec returns the geometry of the view.
func (t *Tensor[T]) Spec() Spec { return t.spec }

// Dim returns the shape of the view.
func (t *Tensor[T]) Dim() Dim { return t.spec.Dim() }

// Storage returns the storage the view is bound to.
func (t *Tensor[T]) Storage() *Storage[T] { return t.storage }

// SameShape reports whether t and other have the same order and sizes.
func (t *Tensor[T]) SameShape(other *Tensor[T]) bool {
	return t.spec.SameShape(other.spec)
}

// SameShape reports whether a and b have the same order and sizes,
// regardless of their element types.
func SameShape[A, B any](a *Tensor[A], b *Tensor[B]) bool {
	return a.spec.SameShape(b.spec)
}

// Index returns the storage position of the element at the given indices.
func (t *Tensor[T]) Index(indices ...int) (int, error) {
	if err := t.alive(); err != nil {
		return 0, err
	}
	return t.spec.Index(indices...)
}

// Get returns the element at the given indices.
func (t *Tensor[T]) Get(indices ...int) (T, error) {
	var zero T
	off, err := t.Index(indices...)
	if err != nil {
		return zero, err
	}
	return t.storage.data[off], nil
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) At(indices ...int) T {
	v, err := t.Get(indices...)
	if err != nil {
		panic(fmt.Sprintf("At%v: %v", indices, err))
	}
	return v
}

// Set sets the element at the given indices.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	off, err := t.Index(indices...)
	if err != nil {
		return err
	}
	t.storage.data[off] = value
	return nil
}

// Ptr returns the address of the element at the given indices.
func (t *Tensor[T]) Ptr(indices ...int) (*T, error) {
	off, err := t.Index(indices...)
	if err != nil {
		return nil, err
	}
	return &t.storage.data[off], nil
}

// IdxPtr returns the address of the first element of the view,
// or nil if the view has no elements.
func (t *Tensor[T]) IdxPtr() *T {
	if t.alive() != nil || t.NumElements() == 0 {
		return nil
	}
	return &t.storage.data[t.spec.offset]
}

// Data returns the storage elements spanned by the view, from its offset to
// its footprint. For a contiguous view these are exactly its elements in
// row-major order.
//
// WARNING: The slice aliases the storage.
func (t *Tensor[T]) Data() []T {
	if t.alive() != nil {
		return nil
	}
	return t.storage.data[t.spec.offset:t.spec.Footprint()]
}

// Select returns the view of order-1 obtained by fixing dimension d to index i.
func (t *Tensor[T]) Select(d, i int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.Select(d, i)
	if err != nil {
		return nil, err
	}
	return t.derive("select", spec)
}

// Narrow returns the view restricting dimension d to size elements starting at offset.
func (t *Tensor[T]) Narrow(d, size, offset int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.Narrow(d, size, offset)
	if err != nil {
		return nil, err
	}
	return t.derive("narrow", spec)
}

// Transpose returns the view with dimensions d1 and d2 swapped.
func (t *Tensor[T]) Transpose(d1, d2 int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.Transpose(d1, d2)
	if err != nil {
		return nil, err
	}
	return t.derive("transpose", spec)
}

// Permute returns the view whose dimension i is dimension perm[i] of t.
func (t *Tensor[T]) Permute(perm ...int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.Permute(perm...)
	if err != nil {
		return nil, err
	}
	return t.derive("permute", spec)
}

// Unfold returns the view exposing every window of k elements along
// dimension d, taken every step elements, as a new trailing dimension.
func (t *Tensor[T]) Unfold(d, k, step int) (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	spec, err := t.spec.Unfold(d, k, step)
	if err != nil {
		return nil, err
	}
	return t.derive("unfold", spec)
}

// View returns a new view with the same geometry over the same storage.
func (t *Tensor[T]) View() (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	return t.derive("view", t.spec)
}

// Resize changes the sizes of the view, keeping its order and offset.
// Elements in the overlap of the old and new shapes keep their values.
// The storage is grown by IDX_GROW_CHUNK extra elements when it has to be
// reallocated. Only contiguous views can be resized.
func (t *Tensor[T]) Resize(sizes ...int) error {
	return t.ResizeChunk(envconfig.GrowChunk(), sizes...)
}

// ResizeDim is Resize with the sizes of d.
func (t *Tensor[T]) ResizeDim(d Dim) error {
	return t.Resize(d.Sizes()...)
}

// ResizeOne changes the size of dimension d.
func (t *Tensor[T]) ResizeOne(d, size int) error {
	if err := t.alive(); err != nil {
		return err
	}
	if err := t.spec.checkDim("resize", d); err != nil {
		return err
	}
	sizes := t.spec.Sizes()
	sizes[d] = size
	return t.Resize(sizes...)
}

// ResizeChunk is Resize with an explicit growth chunk.
func (t *Tensor[T]) ResizeChunk(chunk int, sizes ...int) error {
	if err := t.alive(); err != nil {
		return err
	}
	next := t.spec
	footprint, err := next.Resize(sizes...)
	if err != nil {
		return err
	}

	// Overlap of the old and new shapes, addressed through both geometries.
	prev := t.spec
	oldOverlap, newOverlap := prev, next
	for i := 0; i < prev.order; i++ {
		n := min(prev.dim[i], next.dim[i])
		oldOverlap.dim[i], newOverlap.dim[i] = n, n
	}

	var saved []T
	if oldOverlap != newOverlap && oldOverlap.NumElements() > 0 {
		saved = make([]T, 0, oldOverlap.NumElements())
		data := t.storage.data
		walk(oldOverlap, func(off int) { saved = append(saved, data[off]) })
	}

	if _, err := t.storage.GrowChunk(footprint, chunk); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	t.spec = next

	if saved != nil {
		data, i := t.storage.data, 0
		walk(newOverlap, func(off int) { data[off] = saved[i]; i++ })
	}
	return nil
}

// SetOffset moves the origin of the view, growing the storage if needed.
func (t *Tensor[T]) SetOffset(offset int) error {
	if err := t.alive(); err != nil {
		return err
	}
	next := t.spec
	if err := next.SetOffset(offset); err != nil {
		return err
	}
	if _, err := t.storage.Grow(next.Footprint()); err != nil {
		return fmt.Errorf("set offset: %w", err)
	}
	t.spec = next
	return nil
}

// Rebind makes t a view of other's storage with other's geometry.
// The new storage is locked before the old one is unlocked.
func (t *Tensor[T]) Rebind(other *Tensor[T]) error {
	if err := other.alive(); err != nil {
		return err
	}
	if _, err := other.storage.Lock(); err != nil {
		return err
	}
	if t.storage != nil && !t.released {
		if _, err := t.storage.Unlock(); err != nil {
			_, _ = other.storage.Unlock()
			return err
		}
	}
	t.storage, t.spec, t.released = other.storage, other.spec, false
	return nil
}

// Release drops the view's lock on its storage. The storage is freed when
// its last view is released. Releasing a view twice returns ErrReleased.
func (t *Tensor[T]) Release() error {
	if err := t.alive(); err != nil {
		return err
	}
	if _, err := t.storage.Unlock(); err != nil {
		return err
	}
	t.released = true
	t.storage = nil
	return nil
}

// Released reports whether Release has been called on the view.
func (t *Tensor[T]) Released() bool {
	return t.released
}

// Clone returns a contiguous deep copy of the view over a new storage.
func (t *Tensor[T]) Clone() (*Tensor[T], error) {
	if err := t.alive(); err != nil {
		return nil, err
	}
	out, err := NewFromDim[T](t.Dim())
	if err != nil {
		return nil, err
	}
	dst := out.storage.data
	i := 0
	for it := t.Iter(); it.Valid(); it.Next() {
		dst[i] = it.Value()
		i++
	}
	return out, nil
}

// String returns a short description such as "Tensor[float32](3x4)".
func (t *Tensor[T]) String() string {
	var zero T
	return fmt.Sprintf("Tensor[%T](%s)", zero, t.spec.Dim())
}

// Pretty returns a multi-line description of the view's geometry and storage.
func (t *Tensor[T]) Pretty() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteByte('\n')
	sb.WriteString(t.spec.Pretty())
	if t.alive() == nil {
		fmt.Fprintf(&sb, "storage:    %d elements, %d refs\n", t.storage.Size(), t.storage.RefCount())
	} else {
		sb.WriteString("storage:    released\n")
	}
	return sb.String()
}

// walk calls fn with the buffer position of every element of s in row-major order.
func walk(s Spec, fn func(off int)) {
	if s.NumElements() == 0 {
		return
	}
	var idx [MaxOrder]int
	off := s.offset
	for {
		fn(off)
		j := s.order - 1
		for ; j >= 0; j-- {
			idx[j]++
			off += s.mod[j]
			if idx[j] < s.dim[j] {
				break
			}
			off -= s.dim[j] * s.mod[j]
			idx[j] = 0
		}
		if j < 0 {
			return
		}
	}
}
