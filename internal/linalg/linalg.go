// Package linalg connects float64 tensor views with gonum's mat package.
//
// Matrix exposes a 2-D view as a mat.Matrix without copying, and FromDense
// and FromVec bind gonum storage to tensor views, so results computed by
// gonum can be sliced and iterated like any other tensor.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/idx/internal/tensor"
)

// Matrix is a mat.Matrix backed by a 2-D float64 view.
type Matrix struct {
	t *tensor.Tensor[float64]
}

var _ mat.Matrix = (*Matrix)(nil)

// NewMatrix wraps t, which must be a live view of order 2.
func NewMatrix(t *tensor.Tensor[float64]) (*Matrix, error) {
	if t.Released() {
		return nil, tensor.ErrReleased
	}
	if t.Order() != 2 {
		return nil, fmt.Errorf("matrix: %w: order %d, want 2", tensor.ErrOrder, t.Order())
	}
	return &Matrix{t: t}, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) {
	return m.t.Size(0), m.t.Size(1)
}

// At returns the element at row i, column j. It panics when i or j is out of range.
func (m *Matrix) At(i, j int) float64 {
	return m.t.At(i, j)
}

// T returns the transpose as a view over the same storage.
// The view holds a reference to the storage until Release is called on it.
func (m *Matrix) T() mat.Matrix {
	tr, err := m.t.Transpose(0, 1)
	if err != nil {
		panic(err)
	}
	return &Matrix{t: tr}
}

// Tensor returns the underlying view.
func (m *Matrix) Tensor() *tensor.Tensor[float64] { return m.t }

// Release releases the underlying view.
func (m *Matrix) Release() error { return m.t.Release() }

// ToDense copies a 2-D view into a new mat.Dense.
func ToDense(t *tensor.Tensor[float64]) (*mat.Dense, error) {
	m, err := NewMatrix(t)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("to dense: %w: %dx%d", tensor.ErrSize, r, c)
	}
	d := mat.NewDense(r, c, nil)
	d.Copy(m)
	return d, nil
}

// FromDense returns a 2-D view over the backing array of d.
// Writes through the view are visible in d and vice versa.
func FromDense(d *mat.Dense) (*tensor.Tensor[float64], error) {
	raw := d.RawMatrix()
	spec, err := tensor.NewSpecStrided(0, []int{raw.Rows, raw.Cols}, []int{raw.Stride, 1})
	if err != nil {
		return nil, err
	}
	return tensor.BindSpec(tensor.WrapStorage(raw.Data), spec)
}

// FromVec returns a 1-D view over the backing array of v.
func FromVec(v *mat.VecDense) (*tensor.Tensor[float64], error) {
	raw := v.RawVector()
	spec, err := tensor.NewSpecStrided(0, []int{raw.N}, []int{raw.Inc})
	if err != nil {
		return nil, err
	}
	return tensor.BindSpec(tensor.WrapStorage(raw.Data), spec)
}

// Mul returns the matrix product a·b as a new tensor.
// a and b may be strided views such as transposes or narrowed blocks.
func Mul(a, b *tensor.Tensor[float64]) (*tensor.Tensor[float64], error) {
	ma, err := NewMatrix(a)
	if err != nil {
		return nil, err
	}
	mb, err := NewMatrix(b)
	if err != nil {
		return nil, err
	}
	ar, ac := ma.Dims()
	br, bc := mb.Dims()
	if ac != br {
		return nil, fmt.Errorf("mul: %w: %dx%d by %dx%d", tensor.ErrShapeMismatch, ar, ac, br, bc)
	}
	if ar == 0 || ac == 0 || bc == 0 {
		return nil, fmt.Errorf("mul: %w: empty operand", tensor.ErrSize)
	}
	var d mat.Dense
	d.Mul(ma, mb)
	return FromDense(&d)
}

// EigSym returns the eigenvalues of the symmetric matrix t in ascending order
// and the corresponding eigenvectors as the columns of a new tensor.
// Only the upper triangle of t is read.
func EigSym(t *tensor.Tensor[float64]) (vals, vecs *tensor.Tensor[float64], err error) {
	m, err := NewMatrix(t)
	if err != nil {
		return nil, nil, err
	}
	r, c := m.Dims()
	if r != c || r == 0 {
		return nil, nil, fmt.Errorf("eig: %w: %dx%d is not square", tensor.ErrShapeMismatch, r, c)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("eig: factorization failed")
	}

	vals, err = tensor.FromSlice(eig.Values(nil), r)
	if err != nil {
		return nil, nil, err
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)
	vecs, err = FromDense(&ev)
	if err != nil {
		_ = vals.Release()
		return nil, nil, err
	}
	return vals, vecs, nil
}
