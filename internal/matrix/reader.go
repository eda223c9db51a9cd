package matrix

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/born-ml/idx/internal/envconfig"
	"github.com/born-ml/idx/internal/tensor"
)

// chunkElems is the number of elements converted per read or write call
// when the payload cannot be transferred in one piece.
const chunkElems = 4096

// ReadHeader reads a native or IDX header from r.
// On success r is positioned at the first payload byte.
func ReadHeader(r io.Reader) (*Header, error) {
	var word [4]byte
	if _, err := io.ReadFull(r, word[:]); err != nil {
		return nil, fmt.Errorf("failed to read magic number: %w", err)
	}
	le := int32(binary.LittleEndian.Uint32(word[:])) //nolint:gosec // G115: magic is a bit pattern
	be := int32(binary.BigEndian.Uint32(word[:]))    //nolint:gosec // G115: magic is a bit pattern

	if dt, ok := nativeTypes[le]; ok {
		return readNativeDims(r, &Header{Type: dt, ByteOrder: binary.LittleEndian})
	}
	if dt, ok := nativeTypes[be]; ok {
		return readNativeDims(r, &Header{Type: dt, ByteOrder: binary.BigEndian})
	}
	if be>>16 == 0 && be&0xF0 == 0 {
		if dt, ok := idxTypes[byte(be>>8)]; ok {
			return readIDXDims(r, &Header{Type: dt, IDX: true, ByteOrder: binary.BigEndian}, int(be&0xF))
		}
	}
	return nil, fmt.Errorf("%w: %#08x", ErrInvalidMagic, le)
}

func readNativeDims(r io.Reader, h *Header) (*Header, error) {
	var order int32
	if err := binary.Read(r, h.ByteOrder, &order); err != nil {
		return nil, fmt.Errorf("failed to read order: %w", err)
	}
	if order < 0 {
		return nil, fmt.Errorf("%w: negative order %d", ErrInvalidDim, order)
	}
	if order > tensor.MaxOrder {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyDims, order, tensor.MaxOrder)
	}
	extents := make([]int32, max(int(order), MinHeaderDims))
	if err := binary.Read(r, h.ByteOrder, extents); err != nil {
		return nil, fmt.Errorf("failed to read dimensions: %w", err)
	}
	return h, setDims(h, extents[:order])
}

func readIDXDims(r io.Reader, h *Header, order int) (*Header, error) {
	if order > tensor.MaxOrder {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyDims, order, tensor.MaxOrder)
	}
	extents := make([]int32, order)
	if err := binary.Read(r, h.ByteOrder, extents); err != nil {
		return nil, fmt.Errorf("failed to read dimensions: %w", err)
	}
	return h, setDims(h, extents)
}

func setDims(h *Header, extents []int32) error {
	h.Dims = make([]int, len(extents))
	for i, e := range extents {
		if e <= 0 {
			return fmt.Errorf("%w: extent %d of dimension %d", ErrInvalidDim, e, i)
		}
		h.Dims[i] = int(e)
	}
	if _, err := tensor.NewDim(h.Dims...); err != nil {
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	n, limit := h.NumElements(), envconfig.MaxElements()
	if n > limit {
		return fmt.Errorf("%w: %d elements, limit is %d (IDX_MAX_ELEMENTS)", ErrTooLarge, n, limit)
	}
	if n > math.MaxInt64/h.Type.Size() {
		return fmt.Errorf("%w: payload of %d %s elements overflows int64", ErrTooLarge, n, h.Type)
	}
	return nil
}

// Read reads a matrix from r into a new tensor.
// Elements are converted when the file type differs from T.
func Read[T tensor.DType](r io.Reader) (*tensor.Tensor[T], error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return readNew[T](r, h)
}

func readNew[T tensor.DType](r io.Reader, h *Header) (*tensor.Tensor[T], error) {
	t, err := tensor.New[T](h.Dims...)
	if err != nil {
		return nil, err
	}
	if err := readPayload(r, h, t); err != nil {
		_ = t.Release()
		return nil, err
	}
	return t, nil
}

// ReadInto reads a matrix from r into t, resizing t to the extents in the file.
// The file must have the same order as t.
func ReadInto[T tensor.DType](r io.Reader, t *tensor.Tensor[T]) error {
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}
	return readInto(r, h, t)
}

func readInto[T tensor.DType](r io.Reader, h *Header, t *tensor.Tensor[T]) error {
	if h.Order() != t.Order() {
		return fmt.Errorf("%w: file has order %d, tensor has order %d", ErrOrderMismatch, h.Order(), t.Order())
	}
	if !slices.Equal(h.Dims, t.Sizes()) {
		if err := t.Resize(h.Dims...); err != nil {
			return err
		}
	}
	return readPayload(r, h, t)
}

func readPayload[T tensor.DType](r io.Reader, h *Header, dst *tensor.Tensor[T]) error {
	switch h.Type {
	case tensor.Uint8:
		return decode[T, uint8](r, h.ByteOrder, dst)
	case tensor.Int8:
		return decode[T, int8](r, h.ByteOrder, dst)
	case tensor.Int16:
		return decode[T, int16](r, h.ByteOrder, dst)
	case tensor.Int32:
		return decode[T, int32](r, h.ByteOrder, dst)
	case tensor.Int64:
		return decode[T, int64](r, h.ByteOrder, dst)
	case tensor.Uint32:
		return decode[T, uint32](r, h.ByteOrder, dst)
	case tensor.Float16Type:
		return decode[T, tensor.Float16](r, h.ByteOrder, dst)
	case tensor.Float32:
		return decode[T, float32](r, h.ByteOrder, dst)
	case tensor.Float64:
		return decode[T, float64](r, h.ByteOrder, dst)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, h.Type)
}

// decode reads dst.NumElements() elements of type S and stores them into
// dst in row-major order.
func decode[T, S tensor.DType](r io.Reader, order binary.ByteOrder, dst *tensor.Tensor[T]) error {
	n := dst.NumElements()
	if data, ok := any(dst.Data()).([]S); ok && dst.Contiguous() {
		if err := binary.Read(r, order, data[:n]); err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		return nil
	}

	buf := make([]S, min(n, chunkElems))
	it := dst.Iter()
	for left := n; left > 0; {
		k := min(left, len(buf))
		if err := binary.Read(r, order, buf[:k]); err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		for _, v := range buf[:k] {
			it.Set(tensor.Convert[T](v))
			it.Next()
		}
		left -= k
	}
	return nil
}

// Load reads the matrix file at path into a new tensor.
func Load[T tensor.DType](path string) (*tensor.Tensor[T], error) {
	//nolint:gosec // G304: loading a user-supplied path is the point
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	h, err := readFileHeader(f, br)
	if err != nil {
		return nil, &FileError{Path: path, Op: "load", Err: err}
	}
	t, err := readNew[T](br, h)
	if err != nil {
		return nil, &FileError{Path: path, Op: "load", Err: err}
	}
	slog.Debug("loaded matrix", "path", path, "type", tensor.DataTypeOf[T](), "dims", t.Dim())
	return t, nil
}

// LoadInto reads the matrix file at path into t.
func LoadInto[T tensor.DType](path string, t *tensor.Tensor[T]) error {
	//nolint:gosec // G304: loading a user-supplied path is the point
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	h, err := readFileHeader(f, br)
	if err != nil {
		return &FileError{Path: path, Op: "load", Err: err}
	}
	if err := readInto(br, h, t); err != nil {
		return &FileError{Path: path, Op: "load", Err: err}
	}
	slog.Debug("loaded matrix", "path", path, "type", tensor.DataTypeOf[T](), "dims", t.Dim())
	return nil
}

// readFileHeader reads the header from r and checks that the regular file f
// is long enough to hold the payload it declares, so no storage is allocated
// for data that is not there.
func readFileHeader(f *os.File, r io.Reader) (*Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Mode().IsRegular() && fi.Size()-h.Size() < h.PayloadSize() {
		return nil, fmt.Errorf("%w: %s needs %d payload bytes, file has %d", ErrTruncated, h, h.PayloadSize(), fi.Size()-h.Size())
	}
	return h, nil
}

// LoadHeader reads only the header of the matrix file at path.
func LoadHeader(path string) (*Header, error) {
	//nolint:gosec // G304: loading a user-supplied path is the point
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		return nil, &FileError{Path: path, Op: "header", Err: err}
	}
	return h, nil
}

// TypeOf returns the element type stored in the matrix file at path.
func TypeOf(path string) (tensor.DataType, error) {
	h, err := LoadHeader(path)
	if err != nil {
		return tensor.Unknown, err
	}
	return h.Type, nil
}
