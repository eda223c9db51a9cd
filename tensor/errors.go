// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/idx/internal/tensor"

// Errors returned by shape, view and storage operations.
// Use errors.Is to test for them; most are wrapped in a *ShapeError.
var (
	ErrOrder         = tensor.ErrOrder
	ErrDimension     = tensor.ErrDimension
	ErrIndex         = tensor.ErrIndex
	ErrSize          = tensor.ErrSize
	ErrNarrow        = tensor.ErrNarrow
	ErrUnfold        = tensor.ErrUnfold
	ErrPermutation   = tensor.ErrPermutation
	ErrNotContiguous = tensor.ErrNotContiguous
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrFootprint     = tensor.ErrFootprint
	ErrOffset        = tensor.ErrOffset
	ErrAlloc         = tensor.ErrAlloc
	ErrRefCount      = tensor.ErrRefCount
	ErrReleased      = tensor.ErrReleased
	ErrDType         = tensor.ErrDType
)

// ShapeError describes an invariant violation detected by a shape or view operation.
type ShapeError = tensor.ShapeError
