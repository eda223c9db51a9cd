package tensor

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Storage is a reference-counted flat buffer of elements shared by tensor views.
//
// A storage starts with a reference count of zero. Every view bound to it
// calls Lock, and Unlock when it is released; the buffer is dropped when the
// count returns to zero. Growth never shrinks the buffer, so offsets that were
// valid for any live view stay valid.
//
// Only the reference count is safe for concurrent use. Growing or releasing
// a storage while another goroutine reads its elements is a data race.
type Storage[T any] struct {
	data     []T
	refCount atomic.Int32
	released atomic.Bool
}

// NewStorage creates a zero-filled storage holding n elements.
func NewStorage[T any](n int) (*Storage[T], error) {
	data, err := allocate[T](n)
	if err != nil {
		return nil, err
	}
	return &Storage[T]{data: data}, nil
}

// WrapStorage creates a storage backed by data without copying it.
// Writes through views bound to the storage are visible in data until the
// storage has to grow beyond len(data).
func WrapStorage[T any](data []T) *Storage[T] {
	return &Storage[T]{data: data}
}

func allocate[T any](n int) (data []T, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAlloc, n)
	}
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %d elements: %v", ErrAlloc, n, r)
		}
	}()
	return make([]T, n), nil
}

// Size returns the capacity of the storage in elements.
func (s *Storage[T]) Size() int {
	return len(s.data)
}

// Grow makes sure the storage holds at least n elements.
// It returns the resulting size.
func (s *Storage[T]) Grow(n int) (int, error) {
	return s.GrowChunk(n, 0)
}

// GrowChunk makes sure the storage holds at least n elements. When the storage
// has to be reallocated, chunk extra elements are reserved to amortize
// subsequent growth. Existing elements are preserved.
func (s *Storage[T]) GrowChunk(n, chunk int) (int, error) {
	if chunk < 0 {
		return 0, fmt.Errorf("%w: negative chunk %d", ErrAlloc, chunk)
	}
	if s.released.Load() {
		return 0, ErrReleased
	}
	if n <= len(s.data) {
		return len(s.data), nil
	}
	grown, err := allocate[T](n + min(chunk, math.MaxInt-n))
	if err != nil {
		return 0, err
	}
	copy(grown, s.data)
	s.data = grown
	return len(s.data), nil
}

// Lock increments the reference count.
func (s *Storage[T]) Lock() (int, error) {
	if s.released.Load() {
		return 0, ErrReleased
	}
	return int(s.refCount.Add(1)), nil
}

// Unlock decrements the reference count and drops the buffer when it reaches
// zero. Unlocking a storage whose count is already zero is an error.
func (s *Storage[T]) Unlock() (int, error) {
	n := s.refCount.Add(-1)
	if n < 0 {
		s.refCount.Add(1)
		return 0, ErrRefCount
	}
	if n == 0 {
		s.data = nil
		s.released.Store(true)
	}
	return int(n), nil
}

// RefCount returns the current number of locks held on the storage.
func (s *Storage[T]) RefCount() int {
	return int(s.refCount.Load())
}

// Released returns true once the last lock has been dropped.
func (s *Storage[T]) Released() bool {
	return s.released.Load()
}

// Get returns the i-th element of the flat buffer.
func (s *Storage[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(s.data) {
		return zero, fmt.Errorf("%w: storage index %d (size %d)", ErrIndex, i, len(s.data))
	}
	return s.data[i], nil
}

// Set sets the i-th element of the flat buffer.
func (s *Storage[T]) Set(i int, v T) error {
	if i < 0 || i >= len(s.data) {
		return fmt.Errorf("%w: storage index %d (size %d)", ErrIndex, i, len(s.data))
	}
	s.data[i] = v
	return nil
}

// Clear sets every element of the buffer to the zero value.
func (s *Storage[T]) Clear() {
	clear(s.data)
}

// Data returns the whole flat buffer.
//
// WARNING: The slice aliases the storage and is replaced when the storage grows.
func (s *Storage[T]) Data() []T {
	return s.data
}
