package matrix

import (
	"crypto/sha256"
	"io"
	"os"

	"github.com/born-ml/idx/internal/tensor"
)

// Checksum returns the SHA-256 of the native encoding of t.
// Views with the same shape and elements have the same checksum whatever
// their strides, and it matches ChecksumFile of the file Save writes.
func Checksum[T tensor.DType](t *tensor.Tensor[T]) ([32]byte, error) {
	h := sha256.New()
	if err := Write(h, t); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ChecksumReader returns the SHA-256 of everything read from r.
func ChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ChecksumFile returns the SHA-256 of the file at path.
func ChecksumFile(path string) ([32]byte, error) {
	//nolint:gosec // G304: reading a user-supplied path is the point
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer f.Close()
	return ChecksumReader(f)
}
