// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for the Adam optimizer.
//
// Example:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01})
//	opt.Step(params, grads)
package optim

import (
	"github.com/born-ml/shallow/internal/optim"
)

// Adam is the Adam optimizer with a timestep shared across the
// parameter list.
type Adam = optim.Adam

// AdamConfig configures Adam; zero-valued fields use the standard
// defaults (lr 0.001, betas 0.9/0.999, eps 1e-8).
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
