// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided, reference-counted views over flat element buffers.
//
// # Overview
//
// A Tensor is a shape descriptor (Spec) bound to a reference-counted Storage.
// View operations never copy elements; they return a new Tensor that shares
// the storage of the one it came from:
//   - Select removes a dimension by fixing its index
//   - Narrow restricts a dimension to a sub-range
//   - Transpose and Permute reorder dimensions
//   - Unfold exposes overlapping windows as an extra dimension
//
// # Basic Usage
//
//	import "github.com/born-ml/idx/tensor"
//
//	func main() {
//	    x, _ := tensor.Arange[float32](0, 16)
//	    m, _ := x.Unfold(0, 4, 4)      // 4x4 view over the same elements
//	    col, _ := m.Select(1, 2)       // third column: [2 6 10 14]
//	    defer col.Release()
//
//	    for i, v := range col.All() {
//	        fmt.Println(i, v)
//	    }
//	}
//
// # Iteration
//
// Iter returns the fastest iterator for a view: a linear scan when the view
// is contiguous, an index odometer otherwise. Both visit elements in
// row-major order. Looper walks the sub-views along one dimension.
//
// # Lifetime
//
// Every view holds a reference on its storage. Release drops it; the element
// buffer is freed when the last view is released.
package tensor
