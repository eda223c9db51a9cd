// Package envconfig reads the library's configuration from environment variables.
//
// Every getter reads the environment when it is called; invalid values are
// reported with slog.Warn and replaced by the default.
package envconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level.
// Configurable via IDX_DEBUG: 0/false = INFO (default), 1/true = DEBUG, n = Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("IDX_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// GrowChunk is the number of extra elements reserved when a resize has to
	// reallocate storage.
	GrowChunk = Count("IDX_GROW_CHUNK", 0)

	// MaxElements is the largest element count accepted from a matrix header.
	MaxElements = Count("IDX_MAX_ELEMENTS", math.MaxInt32)

	// DumpThreshold is the element count above which dumps are summarized.
	DumpThreshold = Int("IDX_DUMP_THRESHOLD", 1000)

	// DumpEdgeItems is the number of leading and trailing items printed per
	// dimension of a summarized dump.
	DumpEdgeItems = Int("IDX_DUMP_EDGE_ITEMS", 3)

	// DumpPrecision is the number of decimals printed for floating-point
	// elements. -1 prints the shortest exact representation.
	DumpPrecision = Int("IDX_DUMP_PRECISION", 4)
)

// Var returns an environment variable stripped of leading and trailing
// quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Count returns a getter for a non-negative integer variable with a default.
// Values above math.MaxInt are clamped to it.
func Count(key string, defaultValue int) func() int {
	return func() int {
		if s := Var(key); s != "" {
			n, err := strconv.ParseUint(s, 10, 64)
			switch {
			case errors.Is(err, strconv.ErrRange) || (err == nil && n > math.MaxInt):
				slog.Warn("environment variable out of range, clamping", "key", key, "value", s, "max", math.MaxInt)
				return math.MaxInt
			case err != nil:
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			default:
				return int(n)
			}
		}
		return defaultValue
	}
}

// Int returns a getter for an integer variable with a default.
func Int(key string, defaultValue int) func() int {
	return func() int {
		if s := Var(key); s != "" {
			if n, err := strconv.Atoi(s); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// EnvVar describes a configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"IDX_DEBUG":           {"IDX_DEBUG", LogLevel(), "Show additional debug information (e.g. IDX_DEBUG=1)"},
		"IDX_GROW_CHUNK":      {"IDX_GROW_CHUNK", GrowChunk(), "Extra elements reserved when a resize reallocates storage (default 0)"},
		"IDX_MAX_ELEMENTS":    {"IDX_MAX_ELEMENTS", MaxElements(), "Largest element count accepted when reading a matrix header (default 2147483647)"},
		"IDX_DUMP_THRESHOLD":  {"IDX_DUMP_THRESHOLD", DumpThreshold(), "Element count above which dumps are summarized (default 1000)"},
		"IDX_DUMP_EDGE_ITEMS": {"IDX_DUMP_EDGE_ITEMS", DumpEdgeItems(), "Items printed at each end of a summarized dimension (default 3)"},
		"IDX_DUMP_PRECISION":  {"IDX_DUMP_PRECISION", DumpPrecision(), "Decimals printed for floating-point elements (default 4)"},
	}
}

// Values returns every configuration variable formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
