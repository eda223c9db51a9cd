package tensor

import (
	"strconv"
	"strings"
)

// Dim describes a shape (order and sizes) without offset, strides or storage.
// It is used to request a shape independently of any memory layout.
type Dim struct {
	order int
	dims  [MaxOrder]int
}

// NewDim creates a Dim with the given sizes.
func NewDim(sizes ...int) (Dim, error) {
	var d Dim
	if len(sizes) > MaxOrder {
		return d, newShapeError("dim", -1, ErrOrder, "order %d exceeds %d", len(sizes), MaxOrder)
	}
	total := 1
	for i := len(sizes) - 1; i >= 0; i-- {
		n := sizes[i]
		if n < 0 {
			return d, newShapeError("dim", i, ErrSize, "negative size %d", n)
		}
		var ok bool
		if total, ok = mulInt(total, n); !ok {
			return d, newShapeError("dim", i, ErrSize, "size product overflows int")
		}
	}
	d.order = len(sizes)
	copy(d.dims[:], sizes)
	return d, nil
}

// Order returns the number of dimensions.
func (d Dim) Order() int { return d.order }

// Size returns the size of dimension i.
// It panics if i is not a valid dimension.
func (d Dim) Size(i int) int {
	if i < 0 || i >= d.order {
		panic("dimension " + strconv.Itoa(i) + " out of range for order " + strconv.Itoa(d.order))
	}
	return d.dims[i]
}

// Sizes returns a copy of the sizes.
func (d Dim) Sizes() []int {
	out := make([]int, d.order)
	copy(out, d.dims[:d.order])
	return out
}

// NumElements returns the product of the sizes.
func (d Dim) NumElements() int {
	n := 1
	for i := 0; i < d.order; i++ {
		n *= d.dims[i]
	}
	return n
}

// Strides returns the contiguous row-major strides for d.
func (d Dim) Strides() []int {
	s := make([]int, d.order)
	m := 1
	for i := d.order - 1; i >= 0; i-- {
		s[i] = m
		m *= d.dims[i]
	}
	return s
}

// SetSize sets the size of dimension i.
func (d *Dim) SetSize(i, size int) error {
	if i < 0 || i >= d.order {
		return newShapeError("set size", i, ErrDimension, "order is %d", d.order)
	}
	if size < 0 {
		return newShapeError("set size", i, ErrSize, "negative size %d", size)
	}
	next := d.Sizes()
	next[i] = size
	nd, err := NewDim(next...)
	if err != nil {
		return err
	}
	*d = nd
	return nil
}

// InsertDim inserts a dimension of the given size at position pos, shifting
// later dimensions right. d must already have at least one dimension and
// pos must be in [0, order].
func (d *Dim) InsertDim(size, pos int) error {
	if d.order == 0 {
		return newShapeError("insert dim", -1, ErrOrder, "cannot insert into an order-0 shape")
	}
	if d.order >= MaxOrder {
		return newShapeError("insert dim", -1, ErrOrder, "order %d is already maximal", d.order)
	}
	if pos < 0 || pos > d.order {
		return newShapeError("insert dim", pos, ErrDimension, "position out of range [0, %d]", d.order)
	}
	if size < 0 {
		return newShapeError("insert dim", pos, ErrSize, "negative size %d", size)
	}
	next := d.Sizes()
	next = append(next[:pos], append([]int{size}, next[pos:]...)...)
	nd, err := NewDim(next...)
	if err != nil {
		return err
	}
	*d = nd
	return nil
}

// Equal reports whether d and other have the same order and sizes.
func (d Dim) Equal(other Dim) bool {
	return d == other
}

// String returns the sizes joined by "x", e.g. "3x4x5".
func (d Dim) String() string {
	parts := make([]string, d.order)
	for i := range parts {
		parts[i] = strconv.Itoa(d.dims[i])
	}
	return strings.Join(parts, "x")
}
