package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/idx/tensor"
)

// viewOp is one view operation given on the command line, such as --narrow 0:2:1.
type viewOp struct {
	kind string
	args []int
}

func (op viewOp) String() string {
	parts := make([]string, len(op.args))
	for i, a := range op.args {
		parts[i] = strconv.Itoa(a)
	}
	return op.kind + " " + strings.Join(parts, ":")
}

// opArity is the number of integer arguments each view operation takes.
var opArity = map[string]int{
	"select":    2,
	"narrow":    3,
	"transpose": 2,
	"unfold":    3,
}

// opFlag appends to a list shared by all view flags, so operations keep
// their command-line order across flag names.
type opFlag struct {
	kind string
	ops  *[]viewOp
}

func (f *opFlag) String() string { return "" }

func (f *opFlag) Type() string {
	return strings.Repeat("n:", opArity[f.kind]-1) + "n"
}

func (f *opFlag) Set(s string) error {
	op, err := parseViewOp(f.kind, s)
	if err != nil {
		return err
	}
	*f.ops = append(*f.ops, op)
	return nil
}

func parseViewOp(kind, s string) (viewOp, error) {
	fields := strings.Split(s, ":")
	if len(fields) != opArity[kind] {
		return viewOp{}, fmt.Errorf("%s: want %d colon-separated integers, got %q", kind, opArity[kind], s)
	}
	op := viewOp{kind: kind, args: make([]int, len(fields))}
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return viewOp{}, fmt.Errorf("%s: %w", kind, err)
		}
		op.args[i] = n
	}
	return op, nil
}

// applyOps returns a new view of t with ops applied in order.
// The caller must release the result; t is left untouched.
func applyOps[T any](t *tensor.Tensor[T], ops []viewOp) (*tensor.Tensor[T], error) {
	cur, err := t.View()
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		var next *tensor.Tensor[T]
		a := op.args
		switch op.kind {
		case "select":
			next, err = cur.Select(a[0], a[1])
		case "narrow":
			next, err = cur.Narrow(a[0], a[1], a[2])
		case "transpose":
			next, err = cur.Transpose(a[0], a[1])
		case "unfold":
			next, err = cur.Unfold(a[0], a[1], a[2])
		default:
			err = fmt.Errorf("unknown view operation %q", op.kind)
		}
		_ = cur.Release()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cur = next
	}
	return cur, nil
}
