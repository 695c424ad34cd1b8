// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense float32 matrix
// type used throughout the training core.
//
// Matrices follow the columns-as-samples convention: an input batch has
// shape [features, batch].
//
// Example:
//
//	x := tensor.Zeros(2, 4)
//	x.Set(0, 1, 1)
//	y := tensor.Tanh(x)
package tensor

import (
	"math/rand"

	"github.com/born-ml/shallow/internal/tensor"
)

// Dense is a dense float32 matrix with row-major storage.
type Dense = tensor.Dense

// ShapeError reports a dimension mismatch detected before computation.
type ShapeError = tensor.ShapeError

// NewDense creates a rows×cols matrix filled with zeros.
func NewDense(rows, cols int) *Dense {
	return tensor.NewDense(rows, cols)
}

// Zeros creates a rows×cols matrix filled with zeros.
func Zeros(rows, cols int) *Dense {
	return tensor.Zeros(rows, cols)
}

// Randn creates a rows×cols matrix with entries from N(0, 1) scaled by
// scale, drawn from rng.
func Randn(rows, cols int, scale float32, rng *rand.Rand) *Dense {
	return tensor.Randn(rows, cols, scale, rng)
}

// FromSlice creates a rows×cols matrix from row-major data.
func FromSlice(data []float32, rows, cols int) (*Dense, error) {
	return tensor.FromSlice(data, rows, cols)
}

// MatMul computes a·b.
func MatMul(a, b *Dense) *Dense {
	return tensor.MatMul(a, b)
}

// Sub returns a − b.
func Sub(a, b *Dense) *Dense {
	return tensor.Sub(a, b)
}

// Tanh returns the element-wise hyperbolic tangent.
func Tanh(a *Dense) *Dense {
	return tensor.Tanh(a)
}

// MSE returns the mean squared error between predictions and targets.
func MSE(pred, target *Dense) float64 {
	return tensor.MSE(pred, target)
}
