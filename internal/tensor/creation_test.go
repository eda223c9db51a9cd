package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerosOnesFull(t *testing.T) {
	z, err := Zeros[int64](2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0, 0}, collect(t, z))

	o, err := Ones[float32](3)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1}, collect(t, o))

	f, err := Full[uint8](7, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint8{7, 7}, collect(t, f))

	_, err = Zeros[float32](-1)
	assert.ErrorIs(t, err, ErrSize)
}

func TestArange(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       []float64
	}{
		{"integers", 0, 5, []float64{0, 1, 2, 3, 4}},
		{"offset", 3, 6, []float64{3, 4, 5}},
		{"fractional end", 0, 2.5, []float64{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Arange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, collect(t, x))
		})
	}

	ints, err := Arange[int32](2, 5)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 3, 4}, collect(t, ints))

	_, err = Arange[int32](5, 5)
	assert.ErrorIs(t, err, ErrSize)
}

func TestEye(t *testing.T) {
	e, err := Eye[int16](3)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 0, 0, 0, 1, 0, 0, 0, 1}, collect(t, e))
}

func TestRand(t *testing.T) {
	a, err := Rand[float64](rand.New(rand.NewSource(1)), 4, 4) //nolint:gosec // G404: deterministic test data
	require.NoError(t, err)
	b, err := Rand[float64](rand.New(rand.NewSource(1)), 4, 4) //nolint:gosec // G404: deterministic test data
	require.NoError(t, err)
	assert.True(t, Equal(a, b), "same seed gives same values")

	for v := range a.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	n, err := Randn[float32](rand.New(rand.NewSource(2)), 1000) //nolint:gosec // G404: deterministic test data
	require.NoError(t, err)
	mean, err := Sum(n)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mean/1000, 0.2)

	_, err = Rand[int32](rand.New(rand.NewSource(1)), 2) //nolint:gosec // G404: deterministic test data
	assert.ErrorIs(t, err, ErrDType)
}
