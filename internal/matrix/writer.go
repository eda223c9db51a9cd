package matrix

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/idx/internal/tensor"
)

// WriteHeader writes the native header for a matrix of type dt with the given extents.
func WriteHeader(w io.Writer, dt tensor.DataType, dims []int) error {
	magic, err := MagicOf(dt)
	if err != nil {
		return err
	}
	if len(dims) > tensor.MaxOrder {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyDims, len(dims), tensor.MaxOrder)
	}

	words := make([]int32, 2+max(len(dims), MinHeaderDims))
	words[0] = magic
	words[1] = int32(len(dims)) //nolint:gosec // G115: bounded by MaxOrder
	for i := range words[2:] {
		words[2+i] = 1
	}
	for i, d := range dims {
		words[2+i] = int32(d) //nolint:gosec // G115: extents are validated by the tensor
	}
	return binary.Write(w, binary.LittleEndian, words)
}

// Write writes t to w in the native format.
// The payload is in row-major order whatever the strides of t.
func Write[T tensor.DType](w io.Writer, t *tensor.Tensor[T]) error {
	if t.Released() {
		return tensor.ErrReleased
	}
	if err := WriteHeader(w, tensor.DataTypeOf[T](), t.Sizes()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if t.Contiguous() {
		if err := binary.Write(w, binary.LittleEndian, t.Data()[:t.NumElements()]); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		return nil
	}

	buf := make([]T, 0, min(t.NumElements(), chunkElems))
	for it := t.Iter(); it.Valid(); it.Next() {
		buf = append(buf, it.Value())
		if len(buf) == cap(buf) {
			if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
	}
	return nil
}

// Save writes t to the file at path, creating or truncating it.
func Save[T tensor.DType](path string, t *tensor.Tensor[T]) (err error) {
	//nolint:gosec // G304: saving to a user-supplied path is the point
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, t); err != nil {
		return &FileError{Path: path, Op: "save", Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &FileError{Path: path, Op: "save", Err: err}
	}
	slog.Debug("saved matrix", "path", path, "type", tensor.DataTypeOf[T](), "dims", t.Dim())
	return nil
}
