package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Spec describes the geometry of a view over a flat buffer: its order, the
// offset of its first element and, for each dimension, a size and a stride.
//
// Spec is a value type. Every view operation comes in three forms that
// compute the same result:
//   - Select returns a new Spec,
//   - SelectInPlace mutates the receiver,
//   - SelectInto writes into a caller-supplied Spec.
//
// On error the destination is left unchanged.
type Spec struct {
	order  int
	offset int
	dim    [MaxOrder]int
	mod    [MaxOrder]int
}

// NewSpec creates a contiguous row-major Spec with the given offset and sizes.
// The number of sizes is the order (0 to MaxOrder).
func NewSpec(offset int, sizes ...int) (Spec, error) {
	var s Spec
	if len(sizes) > MaxOrder {
		return s, newShapeError("spec", -1, ErrOrder, "order %d exceeds %d", len(sizes), MaxOrder)
	}
	if offset < 0 {
		return s, newShapeError("spec", -1, ErrOffset, "negative offset %d", offset)
	}
	for i, n := range sizes {
		if n < 0 {
			return s, newShapeError("spec", i, ErrSize, "negative size %d", n)
		}
	}
	s.order = len(sizes)
	s.offset = offset
	copy(s.dim[:], sizes)
	s.setCanonicalStrides()
	if err := s.checkExtent("spec"); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// NewSpecFromDim creates a contiguous row-major Spec with the shape of d.
func NewSpecFromDim(offset int, d Dim) (Spec, error) {
	return NewSpec(offset, d.Sizes()...)
}

// NewSpecStrided creates a Spec with explicit sizes and strides.
func NewSpecStrided(offset int, sizes, strides []int) (Spec, error) {
	if len(sizes) != len(strides) {
		return Spec{}, newShapeError("spec", -1, ErrShapeMismatch,
			"%d sizes for %d strides", len(sizes), len(strides))
	}
	s, err := NewSpec(offset, sizes...)
	if err != nil {
		return Spec{}, err
	}
	for i, m := range strides {
		if m < 0 {
			return Spec{}, newShapeError("spec", i, ErrSize, "negative stride %d", m)
		}
		s.mod[i] = m
	}
	if err := s.checkExtent("spec"); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// mulInt returns a*b for non-negative a and b, or false on overflow.
func mulInt(a, b int) (int, bool) {
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

// addInt returns a+b for non-negative a and b, or false on overflow.
func addInt(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// checkExtent reports ErrSize if the element count, a canonical stride or
// any addressed position of s does not fit in an int.
func (s Spec) checkExtent(op string) error {
	n := 1
	for i := s.order - 1; i >= 0; i-- {
		var ok bool
		if n, ok = mulInt(n, s.dim[i]); !ok {
			return newShapeError(op, i, ErrSize, "size product overflows int")
		}
	}
	if n == 0 {
		return nil
	}
	r, ok := addInt(s.offset, 1)
	for i := 0; i < s.order && ok; i++ {
		var t int
		if t, ok = mulInt(s.dim[i]-1, s.mod[i]); ok {
			r, ok = addInt(r, t)
		}
	}
	if !ok {
		return newShapeError(op, -1, ErrSize, "footprint overflows int")
	}
	return nil
}

func (s *Spec) setCanonicalStrides() {
	m := 1
	for i := s.order - 1; i >= 0; i-- {
		s.mod[i] = m
		m *= s.dim[i]
	}
}

// Order returns the number of dimensions.
func (s Spec) Order() int { return s.order }

// Offset returns the position of the first element in the buffer.
func (s Spec) Offset() int { return s.offset }

// Size returns the size of dimension d.
// It panics if d is not a valid dimension.
func (s Spec) Size(d int) int {
	if d < 0 || d >= s.order {
		panic(fmt.Sprintf("dimension %d out of range for order %d", d, s.order))
	}
	return s.dim[d]
}

// Stride returns the stride of dimension d.
// It panics if d is not a valid dimension.
func (s Spec) Stride(d int) int {
	if d < 0 || d >= s.order {
		panic(fmt.Sprintf("dimension %d out of range for order %d", d, s.order))
	}
	return s.mod[d]
}

// Sizes returns a copy of the per-dimension sizes.
func (s Spec) Sizes() []int {
	out := make([]int, s.order)
	copy(out, s.dim[:s.order])
	return out
}

// Strides returns a copy of the per-dimension strides.
func (s Spec) Strides() []int {
	out := make([]int, s.order)
	copy(out, s.mod[:s.order])
	return out
}

// Dim returns the dimension descriptor (order and sizes) of s.
func (s Spec) Dim() Dim {
	return Dim{order: s.order, dims: s.dim}
}

// NumElements returns the number of elements addressed by s.
func (s Spec) NumElements() int {
	n := 1
	for i := 0; i < s.order; i++ {
		n *= s.dim[i]
	}
	return n
}

// Footprint returns one past the highest buffer position addressed by s,
// i.e. the minimum buffer size s can be bound to. A Spec with no elements
// addresses nothing and its footprint is its offset.
func (s Spec) Footprint() int {
	if s.NumElements() == 0 {
		return s.offset
	}
	r := s.offset + 1
	for i := 0; i < s.order; i++ {
		r += (s.dim[i] - 1) * s.mod[i]
	}
	return r
}

// Contiguous reports whether the elements of s occupy one unbroken row-major
// run. Strides of size-1 dimensions are ignored.
func (s Spec) Contiguous() bool {
	if s.NumElements() == 0 {
		return true
	}
	size := 1
	for i := s.order - 1; i >= 0; i-- {
		if s.dim[i] != 1 && s.mod[i] != size {
			return false
		}
		size *= s.dim[i]
	}
	return true
}

// SameShape reports whether s and other have the same order and sizes.
// Strides and offsets are ignored.
func (s Spec) SameShape(other Spec) bool {
	if s.order != other.order {
		return false
	}
	for i := 0; i < s.order; i++ {
		if s.dim[i] != other.dim[i] {
			return false
		}
	}
	return true
}

// Index returns the buffer position of the element at the given indices.
func (s Spec) Index(indices ...int) (int, error) {
	if len(indices) != s.order {
		return 0, newShapeError("index", -1, ErrOrder,
			"%d indices for order %d", len(indices), s.order)
	}
	off := s.offset
	for i, idx := range indices {
		if idx < 0 || idx >= s.dim[i] {
			return 0, newShapeError("index", i, ErrIndex,
				"index %d out of range [0, %d)", idx, s.dim[i])
		}
		off += idx * s.mod[i]
	}
	return off, nil
}

// checkDim validates a dimension index for operation op.
func (s Spec) checkDim(op string, d int) error {
	if s.order == 0 {
		return newShapeError(op, -1, ErrOrder, "cannot %s an order-0 view", op)
	}
	if d < 0 || d >= s.order {
		return newShapeError(op, d, ErrDimension, "order is %d", s.order)
	}
	return nil
}

// Resize sets the sizes of s and recomputes contiguous strides, keeping the
// offset. The number of sizes must equal the order. It returns the new
// footprint so the caller can grow its storage.
func (s *Spec) Resize(sizes ...int) (int, error) {
	if s.order == 0 {
		return 0, newShapeError("resize", -1, ErrOrder, "cannot resize an order-0 view")
	}
	if len(sizes) != s.order {
		return 0, newShapeError("resize", -1, ErrOrder,
			"%d sizes for order %d", len(sizes), s.order)
	}
	if !s.Contiguous() {
		return 0, newShapeError("resize", -1, ErrNotContiguous, "strides %v", s.Strides())
	}
	for i, n := range sizes {
		if n < 0 {
			return 0, newShapeError("resize", i, ErrSize, "negative size %d", n)
		}
	}
	r := *s
	copy(r.dim[:], sizes)
	r.setCanonicalStrides()
	if err := r.checkExtent("resize"); err != nil {
		return 0, err
	}
	*s = r
	return s.Footprint(), nil
}

// ResizeDim is Resize with the sizes of d.
func (s *Spec) ResizeDim(d Dim) (int, error) {
	return s.Resize(d.Sizes()...)
}

// ResizeOne sets the size of dimension d and recomputes contiguous strides.
func (s *Spec) ResizeOne(d, size int) (int, error) {
	if err := s.checkDim("resize", d); err != nil {
		return 0, err
	}
	sizes := s.Sizes()
	sizes[d] = size
	return s.Resize(sizes...)
}

// SetOffset moves the origin of s.
func (s *Spec) SetOffset(offset int) error {
	if offset < 0 {
		return newShapeError("set offset", -1, ErrOffset, "negative offset %d", offset)
	}
	r := *s
	r.offset = offset
	if err := r.checkExtent("set offset"); err != nil {
		return err
	}
	*s = r
	return nil
}

// SelectInto writes into dst the order-1 Spec obtained by fixing dimension d
// to index i.
func (s Spec) SelectInto(dst *Spec, d, i int) error {
	if err := s.checkDim("select", d); err != nil {
		return err
	}
	if i < 0 || i >= s.dim[d] {
		return newShapeError("select", d, ErrIndex, "index %d out of range [0, %d)", i, s.dim[d])
	}
	var r Spec
	r.order = s.order - 1
	r.offset = s.offset + i*s.mod[d]
	for j, k := 0, 0; j < s.order; j++ {
		if j == d {
			continue
		}
		r.dim[k], r.mod[k] = s.dim[j], s.mod[j]
		k++
	}
	*dst = r
	return nil
}

// SelectInPlace fixes dimension d of s to index i.
func (s *Spec) SelectInPlace(d, i int) error {
	return s.SelectInto(s, d, i)
}

// Select returns the Spec obtained by fixing dimension d to index i.
func (s Spec) Select(d, i int) (Spec, error) {
	var r Spec
	err := s.SelectInto(&r, d, i)
	return r, err
}

// NarrowInto writes into dst the Spec where dimension d is restricted to
// size elements starting at index offset.
func (s Spec) NarrowInto(dst *Spec, d, size, offset int) error {
	if err := s.checkDim("narrow", d); err != nil {
		return err
	}
	if offset < 0 || size < 1 || offset+size > s.dim[d] {
		return newShapeError("narrow", d, ErrNarrow,
			"size %d at offset %d does not fit in %d", size, offset, s.dim[d])
	}
	r := s
	r.offset += offset * s.mod[d]
	r.dim[d] = size
	*dst = r
	return nil
}

// NarrowInPlace restricts dimension d of s to size elements starting at offset.
func (s *Spec) NarrowInPlace(d, size, offset int) error {
	return s.NarrowInto(s, d, size, offset)
}

// Narrow returns s with dimension d restricted to size elements starting at offset.
func (s Spec) Narrow(d, size, offset int) (Spec, error) {
	var r Spec
	err := s.NarrowInto(&r, d, size, offset)
	return r, err
}

// TransposeInto writes into dst the Spec with dimensions d1 and d2 swapped.
func (s Spec) TransposeInto(dst *Spec, d1, d2 int) error {
	if err := s.checkDim("transpose", d1); err != nil {
		return err
	}
	if err := s.checkDim("transpose", d2); err != nil {
		return err
	}
	r := s
	r.dim[d1], r.dim[d2] = s.dim[d2], s.dim[d1]
	r.mod[d1], r.mod[d2] = s.mod[d2], s.mod[d1]
	*dst = r
	return nil
}

// TransposeInPlace swaps dimensions d1 and d2 of s.
func (s *Spec) TransposeInPlace(d1, d2 int) error {
	return s.TransposeInto(s, d1, d2)
}

// Transpose returns s with dimensions d1 and d2 swapped.
func (s Spec) Transpose(d1, d2 int) (Spec, error) {
	var r Spec
	err := s.TransposeInto(&r, d1, d2)
	return r, err
}

// PermuteInto writes into dst the Spec whose dimension i is dimension perm[i] of s.
// perm must be a permutation of [0, order).
func (s Spec) PermuteInto(dst *Spec, perm ...int) error {
	if len(perm) != s.order {
		return newShapeError("permute", -1, ErrPermutation,
			"%d axes for order %d", len(perm), s.order)
	}
	var seen [MaxOrder]bool
	for _, p := range perm {
		if p < 0 || p >= s.order || seen[p] {
			return newShapeError("permute", -1, ErrPermutation, "%v is not a permutation", perm)
		}
		seen[p] = true
	}
	r := s
	for i, p := range perm {
		r.dim[i], r.mod[i] = s.dim[p], s.mod[p]
	}
	*dst = r
	return nil
}

// PermuteInPlace permutes the dimensions of s.
func (s *Spec) PermuteInPlace(perm ...int) error {
	return s.PermuteInto(s, perm...)
}

// Permute returns s with its dimensions permuted.
func (s Spec) Permute(perm ...int) (Spec, error) {
	var r Spec
	err := s.PermuteInto(&r, perm...)
	return r, err
}

// UnfoldInto writes into dst the Spec exposing every window of k elements
// along dimension d, taken every step elements, as a new trailing dimension.
// Dimension d becomes the window index. Trailing elements that do not start
// a full window are not addressed.
func (s Spec) UnfoldInto(dst *Spec, d, k, step int) error {
	if s.order >= MaxOrder {
		return newShapeError("unfold", -1, ErrOrder, "order %d is already maximal", s.order)
	}
	if err := s.checkDim("unfold", d); err != nil {
		return err
	}
	if k < 1 || step < 1 || k > s.dim[d] {
		return newShapeError("unfold", d, ErrUnfold,
			"kernel %d step %d on size %d", k, step, s.dim[d])
	}
	mod, ok := mulInt(s.mod[d], step)
	if !ok {
		return newShapeError("unfold", d, ErrSize, "stride %d times step %d overflows int", s.mod[d], step)
	}
	r := s
	r.order = s.order + 1
	r.dim[s.order], r.mod[s.order] = k, s.mod[d]
	r.dim[d] = (s.dim[d]-k)/step + 1
	r.mod[d] = mod
	if err := r.checkExtent("unfold"); err != nil {
		return err
	}
	*dst = r
	return nil
}

// UnfoldInPlace unfolds dimension d of s.
func (s *Spec) UnfoldInPlace(d, k, step int) error {
	return s.UnfoldInto(s, d, k, step)
}

// Unfold returns s with dimension d unfolded into windows of k elements.
func (s Spec) Unfold(d, k, step int) (Spec, error) {
	var r Spec
	err := s.UnfoldInto(&r, d, k, step)
	return r, err
}

// ShiftDim returns s with dimension d moved to position pos, the other
// dimensions keeping their relative order.
func (s Spec) ShiftDim(d, pos int) (Spec, error) {
	if err := s.checkDim("shift", d); err != nil {
		return Spec{}, err
	}
	if pos < 0 || pos >= s.order {
		return Spec{}, newShapeError("shift", pos, ErrDimension, "target position out of range, order is %d", s.order)
	}
	perm := make([]int, s.order)
	for i, j := 0, 0; i < s.order; i++ {
		if i == pos {
			perm[i] = d
			continue
		}
		if j == d {
			j++
		}
		perm[i] = j
		j++
	}
	return s.Permute(perm...)
}

// ViewAsOrder returns a Spec of order n addressing the same elements as s.
// Growing the order appends trailing size-1 dimensions. Shrinking is only
// possible to order 1 and requires s to be contiguous.
func (s Spec) ViewAsOrder(n int) (Spec, error) {
	switch {
	case n < 0 || n > MaxOrder:
		return Spec{}, newShapeError("view as order", -1, ErrOrder, "order %d out of range [0, %d]", n, MaxOrder)
	case n == s.order:
		return s, nil
	case n > s.order:
		r := s
		for i := s.order; i < n; i++ {
			r.dim[i], r.mod[i] = 1, 1
		}
		r.order = n
		return r, nil
	case n == 1:
		if !s.Contiguous() {
			return Spec{}, newShapeError("view as order", -1, ErrNotContiguous,
				"cannot flatten strides %v", s.Strides())
		}
		return NewSpec(s.offset, s.NumElements())
	default:
		return Spec{}, newShapeError("view as order", -1, ErrOrder,
			"cannot reduce order %d to %d", s.order, n)
	}
}

// checkFootprint verifies that s fits in a buffer of the given capacity.
func (s Spec) checkFootprint(op string, capacity int) error {
	if fp := s.Footprint(); fp > capacity {
		return newShapeError(op, -1, ErrFootprint, "footprint %d, capacity %d", fp, capacity)
	}
	return nil
}

// String returns a compact representation such as "Spec(offset=0, dims=[2 3], strides=[3 1])".
func (s Spec) String() string {
	return fmt.Sprintf("Spec(offset=%d, dims=%v, strides=%v)", s.offset, s.Sizes(), s.Strides())
}

// Pretty returns a multi-line description of s.
func (s Spec) Pretty() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "order:      %d\n", s.order)
	fmt.Fprintf(&sb, "offset:     %d\n", s.offset)
	fmt.Fprintf(&sb, "dims:       %v\n", s.Sizes())
	fmt.Fprintf(&sb, "strides:    %v\n", s.Strides())
	fmt.Fprintf(&sb, "footprint:  %d\n", s.Footprint())
	fmt.Fprintf(&sb, "contiguous: %t\n", s.Contiguous())
	return sb.String()
}
