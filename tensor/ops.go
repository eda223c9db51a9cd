// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/idx/internal/tensor"

// Element kernels

// Copy copies src into dst. Both must hold the same number of elements.
func Copy[T any](dst, src *Tensor[T]) error { return tensor.Copy(dst, src) }

// Fill sets every element of t to v.
func Fill[T any](t *Tensor[T], v T) error { return tensor.Fill(t, v) }

// Clear sets every element of t to the zero value.
func Clear[T any](t *Tensor[T]) error { return tensor.Clear(t) }

// Apply replaces every element x of t with fn(x).
func Apply[T any](t *Tensor[T], fn func(T) T) error { return tensor.Apply(t, fn) }

// Map2 sets dst to fn(a, b) element-wise.
func Map2[T any](dst, a, b *Tensor[T], fn func(x, y T) T) error {
	return tensor.Map2(dst, a, b, fn)
}

// Add stores a + b into dst.
func Add[T DType](dst, a, b *Tensor[T]) error { return tensor.Add(dst, a, b) }

// Sub stores a - b into dst.
func Sub[T DType](dst, a, b *Tensor[T]) error { return tensor.Sub(dst, a, b) }

// Mul stores a * b into dst.
func Mul[T DType](dst, a, b *Tensor[T]) error { return tensor.Mul(dst, a, b) }

// Sum returns the sum of the elements of t.
func Sum[T DType](t *Tensor[T]) (float64, error) { return tensor.Sum(t) }

// Dot returns the sum of the element-wise products of a and b.
func Dot[T DType](a, b *Tensor[T]) (float64, error) { return tensor.Dot(a, b) }

// Equal reports whether a and b have the same shape and elements.
func Equal[T comparable](a, b *Tensor[T]) bool { return tensor.Equal(a, b) }

// Conversion

// Convert converts a single element from S to D.
func Convert[D, S DType](v S) D { return tensor.Convert[D](v) }

// ConvertTo copies src into dst, converting each element.
func ConvertTo[D, S DType](dst *Tensor[D], src *Tensor[S]) error {
	return tensor.ConvertTo(dst, src)
}

// Printing

// DumpOption configures Dump.
type DumpOption = tensor.DumpOption

// WithPrecision sets the number of decimals printed for floating-point elements.
func WithPrecision(n int) DumpOption { return tensor.WithPrecision(n) }

// WithThreshold sets the element count above which Dump summarizes.
func WithThreshold(n int) DumpOption { return tensor.WithThreshold(n) }

// WithEdgeItems sets the number of leading and trailing items kept when summarizing.
func WithEdgeItems(n int) DumpOption { return tensor.WithEdgeItems(n) }

// Dump renders the elements of t as nested brackets.
//
// Example:
//
//	x, _ := tensor.Arange[float32](0, 6)
//	m, _ := x.Unfold(0, 3, 3)
//	fmt.Println(tensor.Dump(m, tensor.WithPrecision(1)))
//	// [[ 0.0,  1.0,  2.0],
//	//  [ 3.0,  4.0,  5.0]]
func Dump[T DType](t *Tensor[T], opts ...DumpOption) string { return tensor.Dump(t, opts...) }
