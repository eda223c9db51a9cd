package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/idx/matrix"
	"github.com/born-ml/idx/tensor"
)

func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a matrix file to another element type",
		Long: `Convert a matrix file to another element type.

IDX and big-endian inputs are accepted; the output is always a native
little-endian matrix file.`,
		Args: cobra.ExactArgs(2),
		RunE: ConvertHandler,
	}
	convertCmd.Flags().String("type", "float", "Output element type ("+strings.Join(matrix.TypeNames(), ", ")+")")
	return convertCmd
}

// ConvertHandler reads IN, converting every element to the requested type, and writes OUT.
func ConvertHandler(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}
	dt, err := matrix.ParseType(name)
	if err != nil {
		return err
	}

	in, out := args[0], args[1]
	switch dt {
	case tensor.Uint8:
		err = convert[uint8](in, out)
	case tensor.Int16:
		err = convert[int16](in, out)
	case tensor.Int32:
		err = convert[int32](in, out)
	case tensor.Uint32:
		err = convert[uint32](in, out)
	case tensor.Int64:
		err = convert[int64](in, out)
	case tensor.Float16Type:
		err = convert[tensor.Float16](in, out)
	case tensor.Float32:
		err = convert[float32](in, out)
	case tensor.Float64:
		err = convert[float64](in, out)
	default:
		err = fmt.Errorf("%w: %s", matrix.ErrUnsupportedType, name)
	}
	if err != nil {
		return err
	}
	slog.Info("converted", "in", in, "out", out, "type", name)
	return nil
}

func convert[T tensor.DType](in, out string) error {
	t, err := matrix.Load[T](in)
	if err != nil {
		return err
	}
	defer t.Release()
	return matrix.Save(out, t)
}
