package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/idx/matrix"
	"github.com/born-ml/idx/tensor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func saveGrid[T tensor.DType](t *testing.T, name string, r, c int) string {
	t.Helper()
	x, err := tensor.Arange[T](0, T(r*c))
	require.NoError(t, err)
	m, err := x.Unfold(0, c, c)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, matrix.Save(path, m))
	return path
}

func TestInfo(t *testing.T) {
	a := saveGrid[float32](t, "a.mat", 2, 3)
	b := saveGrid[uint8](t, "b.mat", 4, 4)

	out, err := run(t, "info", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "FILE")
	assert.Regexp(t, `a\.mat\s+float\s+2\s+2x3\s+6\s+44`, out)
	assert.Regexp(t, `b\.mat\s+ubyte\s+2\s+4x4\s+16\s+36`, out)
}

func TestInfoChecksum(t *testing.T) {
	a := saveGrid[float64](t, "a.mat", 3, 3)
	sum, err := matrix.ChecksumFile(a)
	require.NoError(t, err)

	out, err := run(t, "info", "--checksum", a)
	require.NoError(t, err)
	assert.Contains(t, out, "SHA256")
	assert.Contains(t, out, hex.EncodeToString(sum[:])[:12])
}

func TestInfoMissingFile(t *testing.T) {
	_, err := run(t, "info", filepath.Join(t.TempDir(), "missing.mat"))
	require.Error(t, err)
}

func TestDumpOversizedHeader(t *testing.T) {
	var buf bytes.Buffer
	for _, p := range []any{int32(0x1e3d4c51), int32(4), []int32{65536, 65536, 65536, 65536}} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, p))
	}
	path := filepath.Join(t.TempDir(), "huge.mat")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	for _, cmd := range []string{"dump", "view"} {
		_, err := run(t, cmd, path)
		require.ErrorIs(t, err, matrix.ErrTooLarge, cmd)
	}
}

func TestDump(t *testing.T) {
	path := saveGrid[float32](t, "m.mat", 2, 3)

	out, err := run(t, "dump", path, "--precision", "1")
	require.NoError(t, err)
	assert.Equal(t, "[[ 0.0,  1.0,  2.0],\n [ 3.0,  4.0,  5.0]]\n", out)
}

func TestDumpSummarized(t *testing.T) {
	path := saveGrid[int32](t, "m.mat", 1, 10)

	out, err := run(t, "dump", path, "--threshold", "4", "--edge", "2")
	require.NoError(t, err)
	assert.Equal(t, "[[ 0,  1, ...,  8,  9]]\n", out)
}

func TestView(t *testing.T) {
	path := saveGrid[int32](t, "m.mat", 4, 4)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"narrow then select", []string{"--narrow", "0:2:1", "--select", "1:1"}, "[ 5,  9]"},
		{"transpose then select", []string{"--transpose", "0:1", "--select", "0:1"}, "[ 1,  5,  9,  13]"},
		{"select then transpose order", []string{"--select", "0:1", "--transpose", "0:0"}, "[ 4,  5,  6,  7]"},
		{"unfold", []string{"--select", "0:0", "--unfold", "0:2:2"}, "[[ 0,  1],\n [ 2,  3]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"view", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestViewErrors(t *testing.T) {
	path := saveGrid[int32](t, "m.mat", 4, 4)

	_, err := run(t, "view", path, "--select", "1")
	require.Error(t, err)

	_, err = run(t, "view", path, "--select", "0:9")
	assert.ErrorIs(t, err, tensor.ErrIndex)

	_, err = run(t, "view", path, "--select", "0:1", "--select", "0:1", "--select", "0:0")
	assert.ErrorIs(t, err, tensor.ErrOrder)
}

func TestConvert(t *testing.T) {
	in := saveGrid[float32](t, "in.mat", 2, 2)
	out := filepath.Join(t.TempDir(), "out.mat")

	_, err := run(t, "convert", in, out, "--type", "long")
	require.NoError(t, err)

	dt, err := matrix.TypeOf(out)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, dt)

	y, err := matrix.Load[int64](out)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, y.Sizes())
	assert.Equal(t, int64(3), y.At(1, 1))

	_, err = run(t, "convert", in, out, "--type", "complex")
	assert.ErrorIs(t, err, matrix.ErrUnsupportedType)
}

func TestEnv(t *testing.T) {
	t.Setenv("IDX_GROW_CHUNK", "64")
	out, err := run(t, "env")
	require.NoError(t, err)
	assert.Regexp(t, `IDX_GROW_CHUNK\s+64`, out)
	assert.Contains(t, out, "IDX_DUMP_PRECISION")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "idx version "+version)
}

func TestParseViewOp(t *testing.T) {
	op, err := parseViewOp("narrow", "1:2:3")
	require.NoError(t, err)
	assert.Equal(t, viewOp{kind: "narrow", args: []int{1, 2, 3}}, op)
	assert.Equal(t, "narrow 1:2:3", op.String())

	_, err = parseViewOp("transpose", "0:x")
	assert.Error(t, err)
	_, err = parseViewOp("unfold", "0:1")
	assert.Error(t, err)
}
