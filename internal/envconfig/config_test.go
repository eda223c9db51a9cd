package envconfig

import (
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.LevelWarn,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("IDX_DEBUG", k)
			assert.Equal(t, v, LogLevel())
		})
	}
}

func TestVar(t *testing.T) {
	cases := map[string]string{
		"value":       "value",
		" value ":     "value",
		" 'value' ":   "value",
		` "value" `:   "value",
		" ' value ' ": " value ",
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("IDX_VAR", k)
			assert.Equal(t, v, Var("IDX_VAR"))
		})
	}
}

func TestGrowChunk(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"1024", 1024},
		{"-1", 0},
		{"lots", 0},
		{"18446744073709551615", math.MaxInt},
		{"99999999999999999999999", math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("IDX_GROW_CHUNK", tt.value)
			assert.Equal(t, tt.want, GrowChunk())
		})
	}
}

func TestDumpDefaults(t *testing.T) {
	t.Setenv("IDX_DUMP_THRESHOLD", "")
	t.Setenv("IDX_DUMP_EDGE_ITEMS", "")
	t.Setenv("IDX_DUMP_PRECISION", "")

	assert.Equal(t, 1000, DumpThreshold())
	assert.Equal(t, 3, DumpEdgeItems())
	assert.Equal(t, 4, DumpPrecision())

	t.Setenv("IDX_DUMP_PRECISION", "-1")
	assert.Equal(t, -1, DumpPrecision())

	t.Setenv("IDX_DUMP_EDGE_ITEMS", "two")
	assert.Equal(t, 3, DumpEdgeItems())
}

func TestValues(t *testing.T) {
	t.Setenv("IDX_GROW_CHUNK", "64")

	vals := Values()
	assert.Equal(t, "64", vals["IDX_GROW_CHUNK"])
	assert.Len(t, vals, len(AsMap()))
	for k, v := range AsMap() {
		assert.Equal(t, k, v.Name)
		assert.NotEmpty(t, v.Description)
	}
}
