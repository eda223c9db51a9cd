package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	t.Setenv("IDX_DUMP_PRECISION", "")
	t.Setenv("IDX_DUMP_THRESHOLD", "")
	t.Setenv("IDX_DUMP_EDGE_ITEMS", "")

	tests := []struct {
		name string
		dump func(t *testing.T) string
		want string
	}{
		{
			name: "matrix",
			dump: func(t *testing.T) string {
				return Dump(arange(t, 2, 3), WithPrecision(1))
			},
			want: "[[ 0.0,  1.0,  2.0],\n [ 3.0,  4.0,  5.0]]",
		},
		{
			name: "transposed",
			dump: func(t *testing.T) string {
				tr, err := arange(t, 2, 3).Transpose(0, 1)
				require.NoError(t, err)
				return Dump(tr, WithPrecision(0))
			},
			want: "[[ 0,  3],\n [ 1,  4],\n [ 2,  5]]",
		},
		{
			name: "integers",
			dump: func(t *testing.T) string {
				x, err := FromSlice([]int32{1, -2, 3}, 3)
				require.NoError(t, err)
				return Dump(x)
			},
			want: "[ 1, -2,  3]",
		},
		{
			name: "summarized",
			dump: func(t *testing.T) string {
				x, err := Arange[int64](0, 10)
				require.NoError(t, err)
				return Dump(x, WithThreshold(5), WithEdgeItems(2))
			},
			want: "[ 0,  1, ...,  8,  9]",
		},
		{
			name: "summarized rows",
			dump: func(t *testing.T) string {
				x, err := Arange[int32](0, 8)
				require.NoError(t, err)
				m, err := x.Unfold(0, 2, 2)
				require.NoError(t, err)
				return Dump(m, WithThreshold(4), WithEdgeItems(1))
			},
			want: "[[ 0,  1],\n ...,\n [ 6,  7]]",
		},
		{
			name: "scalar",
			dump: func(t *testing.T) string {
				x, err := Full[float32](2.5)
				require.NoError(t, err)
				return Dump(x)
			},
			want: "2.5000",
		},
		{
			name: "released",
			dump: func(t *testing.T) string {
				x := arange(t, 2)
				require.NoError(t, x.Release())
				return Dump(x)
			},
			want: "<released>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dump(t))
		})
	}
}

func TestDumpEnvDefaults(t *testing.T) {
	t.Setenv("IDX_DUMP_PRECISION", "2")

	x, err := FromSlice([]float64{0.125}, 1)
	require.NoError(t, err)
	assert.Equal(t, "[ 0.12]", Dump(x))
}
