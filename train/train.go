// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for single-run training:
// mini-batch epochs, early stopping, and best-weight restoration.
//
// Example:
//
//	trainer, err := train.New(train.Config{Epochs: 100, BatchSize: 16, Patience: 50}, nil)
//	res, err := trainer.Fit(net, x, y, xVal, yVal)
package train

import (
	"github.com/born-ml/shallow/internal/train"
)

// Config holds the knobs for one training run.
type Config = train.Config

// Trainer drives one training run over a Network.
type Trainer = train.Trainer

// Result carries loss histories, the stopping epoch, per-epoch
// snapshots, and the best checkpoint of a run.
type Result = train.Result

// Outcome reports how a run terminated.
type Outcome = train.Outcome

// Termination outcomes.
const (
	OutcomeExhausted    = train.OutcomeExhausted
	OutcomeEarlyStopped = train.OutcomeEarlyStopped
)

// Hook observes epoch boundaries.
type Hook = train.Hook

// NopHook is a Hook that does nothing.
type NopHook = train.NopHook

// New creates a Trainer. A nil hook is replaced with NopHook.
func New(cfg Config, hook Hook) (*Trainer, error) {
	return train.New(cfg, hook)
}
