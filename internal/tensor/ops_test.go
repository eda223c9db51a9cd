package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	src := arange(t, 2, 3)
	tr, err := src.Transpose(0, 1)
	require.NoError(t, err)

	dst, err := New[float32](6)
	require.NoError(t, err)
	require.NoError(t, Copy(dst, tr))
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, collect(t, dst))

	flat, err := New[float32](3, 2)
	require.NoError(t, err)
	require.NoError(t, Copy(flat, src))
	assert.Equal(t, float32(5), flat.At(2, 1))

	small, err := New[float32](5)
	require.NoError(t, err)
	assert.ErrorIs(t, Copy(small, src), ErrShapeMismatch)
}

func TestFillClearApply(t *testing.T) {
	x := arange(t, 3, 3)
	diag, err := x.Narrow(0, 2, 1)
	require.NoError(t, err)
	col, err := diag.Select(1, 0)
	require.NoError(t, err)

	require.NoError(t, Fill(col, 7))
	assert.Equal(t, []float32{0, 1, 2, 7, 4, 5, 7, 7, 8}, collect(t, x))

	require.NoError(t, Apply(x, func(v float32) float32 { return v + 1 }))
	assert.Equal(t, float32(8), x.At(1, 0))

	require.NoError(t, Clear(diag))
	assert.Equal(t, []float32{1, 2, 3, 0, 0, 0, 0, 0, 0}, collect(t, x))
}

func TestArithmetic(t *testing.T) {
	a, err := FromSlice([]int32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := FromSlice([]int32{10, 20, 30, 40}, 2, 2)
	require.NoError(t, err)
	bt, err := b.Transpose(0, 1)
	require.NoError(t, err)

	out, err := New[int32](2, 2)
	require.NoError(t, err)

	require.NoError(t, Add(out, a, bt))
	assert.Equal(t, []int32{11, 32, 23, 44}, collect(t, out))

	require.NoError(t, Sub(out, b, a))
	assert.Equal(t, []int32{9, 18, 27, 36}, collect(t, out))

	require.NoError(t, Mul(a, a, a))
	assert.Equal(t, []int32{1, 4, 9, 16}, collect(t, a))

	wrong, err := New[int32](4)
	require.NoError(t, err)
	assert.ErrorIs(t, Add(out, a, wrong), ErrShapeMismatch)
	assert.ErrorIs(t, Add(wrong, a, b), ErrShapeMismatch)
}

func TestArithmeticFloat16(t *testing.T) {
	a, err := Full(FromFloat64[Float16](1.5), 3)
	require.NoError(t, err)
	b, err := Full(FromFloat64[Float16](2), 3)
	require.NoError(t, err)

	require.NoError(t, Mul(a, a, b))
	for v := range a.Values() {
		assert.InDelta(t, 3.0, ToFloat64(v), 1e-3)
	}
}

func TestSumDot(t *testing.T) {
	x := arange(t, 2, 3)
	s, err := Sum(x)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, s, 1e-9)

	row, err := x.Select(0, 1)
	require.NoError(t, err)
	col, err := x.Select(1, 2)
	require.NoError(t, err)
	ones, err := Ones[float32](3)
	require.NoError(t, err)

	d, err := Dot(row, ones)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, d, 1e-9)

	_, err = Dot(row, col)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestEqual(t *testing.T) {
	a := arange(t, 2, 2)
	b := arange(t, 2, 2)
	assert.True(t, Equal(a, b))

	require.NoError(t, b.Set(9, 1, 1))
	assert.False(t, Equal(a, b))

	c := arange(t, 4)
	assert.False(t, Equal(a, c))

	require.NoError(t, b.Release())
	assert.False(t, Equal(a, b))
}

func TestConvertTo(t *testing.T) {
	src, err := FromSlice([]float32{0.5, -1.5, 2.25, 100}, 2, 2)
	require.NoError(t, err)

	half, err := New[Float16](4)
	require.NoError(t, err)
	require.NoError(t, ConvertTo(half, src))
	assert.InDelta(t, -1.5, ToFloat64(half.At(1)), 1e-6)

	back, err := New[float64](2, 2)
	require.NoError(t, err)
	require.NoError(t, ConvertTo(back, half))
	assert.Equal(t, []float64{0.5, -1.5, 2.25, 100}, collect(t, back))

	ints, err := New[int8](2, 2)
	require.NoError(t, err)
	require.NoError(t, ConvertTo(ints, src))
	assert.Equal(t, []int8{0, -1, 2, 100}, collect(t, ints))

	wrong, err := New[int8](3)
	require.NoError(t, err)
	assert.ErrorIs(t, ConvertTo(wrong, src), ErrShapeMismatch)
}

func TestConvertScalar(t *testing.T) {
	assert.Equal(t, int32(3), Convert[int32](float64(3.9)))
	assert.Equal(t, float32(2), Convert[float32](FromFloat64[Float16](2)))
	assert.InDelta(t, 0.25, ToFloat64(Convert[Float16](float64(0.25))), 1e-6)
	assert.Equal(t, uint8(200), Convert[uint8](int32(200)))
}
