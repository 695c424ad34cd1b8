// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the one-hidden-layer
// feed-forward regressor.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	net := nn.New(2, 4, 1, 0.1, rng)
//	out, err := net.Forward(batch)
//	err = net.Backward(batch, targets) // one Adam step
package nn

import (
	"math/rand"

	"github.com/born-ml/shallow/internal/nn"
)

// Network is a one-hidden-layer regressor: input → linear → tanh →
// linear → identity output.
type Network = nn.Network

// Snapshot is a deep copy of the four parameter tensors.
type Snapshot = nn.Snapshot

// SequenceError reports Backward invoked without a matching Forward.
type SequenceError = nn.SequenceError

// New creates a Network with fresh parameters and Adam state.
func New(inputSize, hiddenSize, outputSize int, lr float32, rng *rand.Rand) *Network {
	return nn.New(inputSize, hiddenSize, outputSize, lr, rng)
}

// SaveCheckpoint writes a network's parameters to path.
func SaveCheckpoint(path string, n *Network) error {
	return nn.SaveCheckpoint(path, n)
}

// SaveSnapshot writes a parameter snapshot to path.
func SaveSnapshot(path string, s *Snapshot) error {
	return nn.SaveSnapshot(path, s)
}

// LoadCheckpoint restores a network's parameters from path, validating
// field names and shapes against the target network.
func LoadCheckpoint(path string, n *Network) error {
	return nn.LoadCheckpoint(path, n)
}
