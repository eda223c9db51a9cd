package tensor

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, offset int, sizes ...int) Spec {
	t.Helper()
	s, err := NewSpec(offset, sizes...)
	require.NoError(t, err)
	return s
}

func TestNewSpec(t *testing.T) {
	s := mustSpec(t, 5, 2, 3, 4)
	assert.Equal(t, 3, s.Order())
	assert.Equal(t, 5, s.Offset())
	assert.Equal(t, []int{2, 3, 4}, s.Sizes())
	assert.Equal(t, []int{12, 4, 1}, s.Strides())
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, 29, s.Footprint())
	assert.Equal(t, "Spec(offset=5, dims=[2 3 4], strides=[12 4 1])", s.String())

	_, err := NewSpec(-1, 2)
	assert.ErrorIs(t, err, ErrOffset)

	_, err = NewSpecStrided(0, []int{2}, []int{1, 1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewSpecStrided(0, []int{2}, []int{-1})
	assert.ErrorIs(t, err, ErrSize)

	d, err := NewDim(3, 2)
	require.NoError(t, err)
	fromDim, err := NewSpecFromDim(0, d)
	require.NoError(t, err)
	assert.Equal(t, mustSpec(t, 0, 3, 2), fromDim)
	assert.True(t, fromDim.Dim().Equal(d))
}

func TestSpecOverflow(t *testing.T) {
	const big = 65536

	_, err := NewSpec(0, big, big, big, big)
	assert.ErrorIs(t, err, ErrSize)

	// A zero size does not excuse a stride that overflows.
	_, err = NewSpec(0, 0, big, big, big, big)
	assert.ErrorIs(t, err, ErrSize)

	empty, err := NewSpec(0, big, big, big, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumElements())

	_, err = NewSpec(math.MaxInt, 2)
	assert.ErrorIs(t, err, ErrSize)

	_, err = NewSpecStrided(0, []int{2, 2}, []int{math.MaxInt, 1})
	assert.ErrorIs(t, err, ErrSize)

	s := mustSpec(t, 0, 4)
	assert.ErrorIs(t, s.SetOffset(math.MaxInt-1), ErrSize)
	assert.Equal(t, 0, s.Offset())

	r := mustSpec(t, 0, 2, 2, 2, 2)
	_, err = r.Resize(big, big, big, big)
	assert.ErrorIs(t, err, ErrSize)
	assert.Equal(t, []int{2, 2, 2, 2}, r.Sizes())

	wide, err := NewSpecStrided(0, []int{1}, []int{math.MaxInt / 2})
	require.NoError(t, err)
	_, err = wide.Unfold(0, 1, 4)
	assert.ErrorIs(t, err, ErrSize)
}

func TestSpecContiguous(t *testing.T) {
	tests := []struct {
		name    string
		sizes   []int
		strides []int
		want    bool
	}{
		{"row major", []int{2, 3}, []int{3, 1}, true},
		{"transposed", []int{3, 2}, []int{1, 3}, false},
		{"gap", []int{2, 3}, []int{4, 1}, false},
		{"size one ignored", []int{2, 1, 3}, []int{3, 100, 1}, true},
		{"empty", []int{0, 3}, []int{7, 5}, true},
		{"scalar", []int{}, []int{}, true},
		{"vector stride 2", []int{4}, []int{2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpecStrided(0, tt.sizes, tt.strides)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Contiguous())
		})
	}
}

func TestSpecFootprint(t *testing.T) {
	empty, err := NewSpecStrided(4, []int{0, 3}, []int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 4, empty.Footprint())
	assert.Equal(t, 0, empty.NumElements())

	scalar := mustSpec(t, 3)
	assert.Equal(t, 4, scalar.Footprint())

	strided, err := NewSpecStrided(1, []int{2, 3}, []int{10, 2})
	require.NoError(t, err)
	assert.Equal(t, 1+1+10+4, strided.Footprint())

	assert.NoError(t, strided.checkFootprint("test", 16))
	assert.ErrorIs(t, strided.checkFootprint("test", 15), ErrFootprint)
}

func TestSpecSameShape(t *testing.T) {
	a := mustSpec(t, 0, 2, 3)
	b, err := a.Transpose(0, 1)
	require.NoError(t, err)
	c, err := NewSpecStrided(9, []int{2, 3}, []int{1, 2})
	require.NoError(t, err)

	assert.False(t, a.SameShape(b))
	assert.True(t, a.SameShape(c))
	assert.False(t, a.SameShape(mustSpec(t, 0, 2, 3, 1)))
}

// Every view operation must give the same result in its value, in-place and
// into forms.
func TestSpecForms(t *testing.T) {
	base := mustSpec(t, 2, 3, 4, 5)

	type forms struct {
		value   func(Spec) (Spec, error)
		inPlace func(*Spec) error
		into    func(Spec, *Spec) error
	}
	tests := map[string]forms{
		"select": {
			func(s Spec) (Spec, error) { return s.Select(1, 2) },
			func(s *Spec) error { return s.SelectInPlace(1, 2) },
			func(s Spec, d *Spec) error { return s.SelectInto(d, 1, 2) },
		},
		"narrow": {
			func(s Spec) (Spec, error) { return s.Narrow(2, 3, 1) },
			func(s *Spec) error { return s.NarrowInPlace(2, 3, 1) },
			func(s Spec, d *Spec) error { return s.NarrowInto(d, 2, 3, 1) },
		},
		"transpose": {
			func(s Spec) (Spec, error) { return s.Transpose(0, 2) },
			func(s *Spec) error { return s.TransposeInPlace(0, 2) },
			func(s Spec, d *Spec) error { return s.TransposeInto(d, 0, 2) },
		},
		"permute": {
			func(s Spec) (Spec, error) { return s.Permute(2, 0, 1) },
			func(s *Spec) error { return s.PermuteInPlace(2, 0, 1) },
			func(s Spec, d *Spec) error { return s.PermuteInto(d, 2, 0, 1) },
		},
		"unfold": {
			func(s Spec) (Spec, error) { return s.Unfold(2, 2, 2) },
			func(s *Spec) error { return s.UnfoldInPlace(2, 2, 2) },
			func(s Spec, d *Spec) error { return s.UnfoldInto(d, 2, 2, 2) },
		},
	}

	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			want, err := f.value(base)
			require.NoError(t, err)

			inPlace := base
			require.NoError(t, f.inPlace(&inPlace))

			var into Spec
			require.NoError(t, f.into(base, &into))

			assert.Equal(t, want, inPlace)
			assert.Equal(t, want, into)
			assert.Equal(t, mustSpec(t, 2, 3, 4, 5), base, "receiver of value form must not change")
		})
	}
}

func TestSpecSelect(t *testing.T) {
	s := mustSpec(t, 0, 3, 4, 5)

	r, err := s.Select(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Order())
	assert.Equal(t, 10, r.Offset())
	assert.Equal(t, []int{3, 5}, r.Sizes())
	assert.Equal(t, []int{20, 1}, r.Strides())

	_, err = mustSpec(t, 0).Select(0, 0)
	assert.ErrorIs(t, err, ErrOrder)

	// Failed operations leave the destination untouched.
	dst := s
	assert.ErrorIs(t, s.SelectInto(&dst, 0, 3), ErrIndex)
	assert.Equal(t, s, dst)
}

func TestSpecNarrow(t *testing.T) {
	s := mustSpec(t, 0, 4, 4)

	r, err := s.Narrow(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Offset())
	assert.Equal(t, []int{2, 4}, r.Sizes())
	assert.Equal(t, s.Strides(), r.Strides())

	tests := []struct {
		d, size, offset int
		err             error
	}{
		{2, 1, 0, ErrDimension},
		{-1, 1, 0, ErrDimension},
		{0, 5, 0, ErrNarrow},
		{0, 2, 3, ErrNarrow},
		{0, 0, 0, ErrNarrow},
		{0, 1, -1, ErrNarrow},
	}
	for _, tt := range tests {
		_, err := s.Narrow(tt.d, tt.size, tt.offset)
		assert.ErrorIs(t, err, tt.err, "narrow(%d, %d, %d)", tt.d, tt.size, tt.offset)
	}
}

func TestSpecTranspose(t *testing.T) {
	s := mustSpec(t, 1, 2, 3, 4)

	r, err := s.Transpose(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, r.Sizes())
	assert.Equal(t, []int{1, 4, 12}, r.Strides())
	assert.Equal(t, 1, r.Offset())

	back, err := r.Transpose(0, 2)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	same, err := s.Transpose(1, 1)
	require.NoError(t, err)
	assert.Equal(t, s, same)

	_, err = s.Transpose(0, 3)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestSpecPermute(t *testing.T) {
	s := mustSpec(t, 0, 2, 3, 4)

	r, err := s.Permute(1, 2, 0)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{3, 4, 2}, r.Sizes()); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 1, 12}, r.Strides()); diff != "" {
		t.Errorf("strides mismatch (-want +got):\n%s", diff)
	}

	// In place permutation keeps strides paired with their sizes.
	inPlace := s
	require.NoError(t, inPlace.PermuteInPlace(1, 2, 0))
	assert.Equal(t, r, inPlace)

	for _, perm := range [][]int{{0, 0, 1}, {0, 1}, {0, 1, 3}, {-1, 0, 1}} {
		_, err := s.Permute(perm...)
		assert.ErrorIs(t, err, ErrPermutation, "permute %v", perm)
	}
}

func TestSpecUnfold(t *testing.T) {
	s := mustSpec(t, 0, 2, 7)

	r, err := s.Unfold(1, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 3}, r.Sizes())
	assert.Equal(t, []int{7, 2, 1}, r.Strides())
	assert.LessOrEqual(t, r.Footprint(), s.Footprint())

	// Windows that do not tile the dimension exactly are allowed.
	r, err = s.Unfold(1, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3}, r.Sizes())

	tests := []struct {
		d, k, step int
		err        error
	}{
		{2, 1, 1, ErrDimension},
		{1, 0, 1, ErrUnfold},
		{1, 8, 1, ErrUnfold},
		{1, 2, 0, ErrUnfold},
	}
	for _, tt := range tests {
		_, err := s.Unfold(tt.d, tt.k, tt.step)
		assert.ErrorIs(t, err, tt.err, "unfold(%d, %d, %d)", tt.d, tt.k, tt.step)
	}

	full := mustSpec(t, 0, 2, 2, 2, 2, 2, 2, 2, 2)
	_, err = full.Unfold(0, 1, 1)
	assert.ErrorIs(t, err, ErrOrder)
}

func TestSpecShiftDim(t *testing.T) {
	s := mustSpec(t, 0, 2, 3, 4)

	r, err := s.ShiftDim(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, r.Sizes())
	assert.Equal(t, []int{1, 12, 4}, r.Strides())

	r, err = s.ShiftDim(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 2}, r.Sizes())
	assert.Equal(t, []int{4, 1, 12}, r.Strides())

	r, err = s.ShiftDim(1, 1)
	require.NoError(t, err)
	assert.Equal(t, s, r)

	_, err = s.ShiftDim(0, 3)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestSpecViewAsOrder(t *testing.T) {
	s := mustSpec(t, 3, 2, 3)

	r, err := s.ViewAsOrder(2)
	require.NoError(t, err)
	assert.Equal(t, s, r)

	r, err = s.ViewAsOrder(4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1, 1}, r.Sizes())
	assert.Equal(t, s.Footprint(), r.Footprint())

	r, err = s.ViewAsOrder(1)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, r.Sizes())
	assert.Equal(t, 3, r.Offset())

	tr, err := s.Transpose(0, 1)
	require.NoError(t, err)
	_, err = tr.ViewAsOrder(1)
	assert.ErrorIs(t, err, ErrNotContiguous)

	_, err = mustSpec(t, 0, 2, 3, 4).ViewAsOrder(2)
	assert.ErrorIs(t, err, ErrOrder)

	_, err = s.ViewAsOrder(9)
	assert.ErrorIs(t, err, ErrOrder)
}

func TestSpecResize(t *testing.T) {
	s := mustSpec(t, 2, 2, 3)

	fp, err := s.Resize(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 22, fp)
	assert.Equal(t, []int{5, 1}, s.Strides())
	assert.Equal(t, 2, s.Offset())

	fp, err = s.ResizeOne(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, fp)

	d, err := NewDim(3, 3)
	require.NoError(t, err)
	fp, err = s.ResizeDim(d)
	require.NoError(t, err)
	assert.Equal(t, 11, fp)

	_, err = s.Resize(3)
	assert.ErrorIs(t, err, ErrOrder)
}

func TestSpecIndex(t *testing.T) {
	s, err := NewSpecStrided(1, []int{2, 3}, []int{1, 2})
	require.NoError(t, err)

	off, err := s.Index(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1+1+4, off)

	_, err = s.Index(2, 0)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSpecPretty(t *testing.T) {
	p := mustSpec(t, 0, 2, 2).Pretty()
	assert.Contains(t, p, "order:      2")
	assert.Contains(t, p, "footprint:  4")
	assert.Contains(t, p, "contiguous: true")
}
