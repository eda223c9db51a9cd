package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/idx/matrix"
	"github.com/born-ml/idx/tensor"
)

func addDumpFlags(cmd *cobra.Command) {
	cmd.Flags().Int("precision", 0, "Decimals printed for floating-point elements (default $IDX_DUMP_PRECISION)")
	cmd.Flags().Int("threshold", 0, "Element count above which the output is summarized (default $IDX_DUMP_THRESHOLD)")
	cmd.Flags().Int("edge", 0, "Items printed at each end of a summarized dimension (default $IDX_DUMP_EDGE_ITEMS)")
}

func newDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the elements of a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFile(cmd, args[0], nil)
		},
	}
	addDumpFlags(dumpCmd)
	return dumpCmd
}

func newViewCmd() *cobra.Command {
	var ops []viewOp
	viewCmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Apply view operations to a matrix file and print the result",
		Long: `Apply view operations to a matrix file and print the result.

Operations are applied in the order they are given:

  --select d:i       remove dimension d, keeping index i
  --narrow d:s:o     keep s elements of dimension d starting at o
  --transpose a:b    swap dimensions a and b
  --unfold d:k:s     windows of k elements every s along dimension d`,
		Example: "  idx view mnist.idx --select 0:7 --narrow 0:10:9 --transpose 0:1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFile(cmd, args[0], ops)
		},
	}
	for _, kind := range []string{"select", "narrow", "transpose", "unfold"} {
		viewCmd.Flags().Var(&opFlag{kind: kind, ops: &ops}, kind, "Apply a "+kind+" view (repeatable)")
	}
	addDumpFlags(viewCmd)
	return viewCmd
}

func dumpOptions(cmd *cobra.Command) []tensor.DumpOption {
	var opts []tensor.DumpOption
	if cmd.Flags().Changed("precision") {
		n, _ := cmd.Flags().GetInt("precision")
		opts = append(opts, tensor.WithPrecision(n))
	}
	if cmd.Flags().Changed("threshold") {
		n, _ := cmd.Flags().GetInt("threshold")
		opts = append(opts, tensor.WithThreshold(n))
	}
	if cmd.Flags().Changed("edge") {
		n, _ := cmd.Flags().GetInt("edge")
		opts = append(opts, tensor.WithEdgeItems(n))
	}
	return opts
}

func printFile(cmd *cobra.Command, path string, ops []viewOp) error {
	h, err := matrix.LoadHeader(path)
	if err != nil {
		return err
	}
	opts := dumpOptions(cmd)

	var s string
	switch h.Type {
	case tensor.Uint8:
		s, err = render[uint8](path, ops, opts)
	case tensor.Int8:
		s, err = render[int8](path, ops, opts)
	case tensor.Int16:
		s, err = render[int16](path, ops, opts)
	case tensor.Int32:
		s, err = render[int32](path, ops, opts)
	case tensor.Int64:
		s, err = render[int64](path, ops, opts)
	case tensor.Uint32:
		s, err = render[uint32](path, ops, opts)
	case tensor.Float16Type:
		s, err = render[tensor.Float16](path, ops, opts)
	case tensor.Float32:
		s, err = render[float32](path, ops, opts)
	case tensor.Float64:
		s, err = render[float64](path, ops, opts)
	default:
		err = fmt.Errorf("%w: %s", matrix.ErrUnsupportedType, h.Type)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}

func render[T tensor.DType](path string, ops []viewOp, opts []tensor.DumpOption) (string, error) {
	t, err := matrix.Load[T](path)
	if err != nil {
		return "", err
	}
	defer t.Release()

	v, err := applyOps(t, ops)
	if err != nil {
		return "", err
	}
	defer v.Release()

	return tensor.Dump(v, opts...), nil
}
