package tensor

import (
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/idx/internal/envconfig"
)

// DumpOption configures the output of Dump.
type DumpOption func(*dumpOptions)

// WithPrecision sets the number of decimal places printed for floating-point elements.
func WithPrecision(n int) DumpOption {
	return func(opts *dumpOptions) {
		opts.Precision = n
	}
}

// WithThreshold sets the threshold for printing the entire tensor. If the number of elements
// is less than or equal to this value, every element is printed. Otherwise, only the
// beginning and end of each dimension are printed.
func WithThreshold(n int) DumpOption {
	return func(opts *dumpOptions) {
		opts.Threshold = n
	}
}

// WithEdgeItems sets the number of elements printed at the beginning and end of each dimension.
func WithEdgeItems(n int) DumpOption {
	return func(opts *dumpOptions) {
		opts.EdgeItems = n
	}
}

type dumpOptions struct {
	Precision, Threshold, EdgeItems int
}

// Dump converts the elements of a view to a nested-bracket string.
// Defaults come from IDX_DUMP_PRECISION, IDX_DUMP_THRESHOLD and IDX_DUMP_EDGE_ITEMS.
func Dump[T DType](t *Tensor[T], optsFuncs ...DumpOption) string {
	opts := dumpOptions{
		Precision: envconfig.DumpPrecision(),
		Threshold: envconfig.DumpThreshold(),
		EdgeItems: envconfig.DumpEdgeItems(),
	}
	for _, optsFunc := range optsFuncs {
		optsFunc(&opts)
	}
	if t.alive() != nil {
		return "<released>"
	}

	if t.NumElements() <= opts.Threshold {
		opts.EdgeItems = math.MaxInt
	}

	format := func(v T) string {
		if x, ok := any(v).(int64); ok {
			return strconv.FormatInt(x, 10)
		}
		return strconv.FormatInt(int64(ToFloat64(v)), 10)
	}
	if DataTypeOf[T]().IsFloat() {
		format = func(v T) string {
			return strconv.FormatFloat(ToFloat64(v), 'f', opts.Precision, 64)
		}
	}

	s := t.spec
	data := t.storage.data
	if s.order == 0 {
		return format(data[s.offset])
	}

	var sb strings.Builder
	var f func(d, off int)
	f = func(d, off int) {
		prefix := strings.Repeat(" ", d+1)
		sb.WriteString("[")
		defer func() { sb.WriteString("]") }()
		n := s.dim[d]
		items := opts.EdgeItems
		for i := 0; i < n; i++ {
			switch {
			case i >= items && i < n-items:
				sb.WriteString("...")
				if d < s.order-1 {
					sb.WriteString(",")
					sb.WriteString(strings.Repeat("\n", s.order-1-d))
					sb.WriteString(prefix)
				} else {
					sb.WriteString(", ")
				}
				i = n - items - 1
			case d < s.order-1:
				f(d+1, off+i*s.mod[d])
				if i < n-1 {
					sb.WriteString(",")
					sb.WriteString(strings.Repeat("\n", s.order-1-d))
					sb.WriteString(prefix)
				}
			default:
				text := format(data[off+i*s.mod[d]])
				if len(text) > 0 && text[0] != '-' {
					sb.WriteString(" ")
				}
				sb.WriteString(text)
				if i < n-1 {
					sb.WriteString(", ")
				}
			}
		}
	}
	f(0, s.offset)

	return sb.String()
}
