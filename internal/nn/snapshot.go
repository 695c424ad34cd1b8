package nn

import (
	"fmt"

	"github.com/born-ml/shallow/internal/tensor"
)

// Snapshot is a deep copy of the four parameter tensors at a point in
// training, independent of the live network parameters.
//
// Snapshots serve both best-weight checkpointing within a run and the
// best-model registries of the selection loop.
type Snapshot struct {
	W1 *tensor.Dense
	B1 *tensor.Dense
	W2 *tensor.Dense
	B2 *tensor.Dense
}

// Snapshot returns a deep copy of the network's current parameters.
func (n *Network) Snapshot() *Snapshot {
	return &Snapshot{
		W1: n.w1.Clone(),
		B1: n.b1.Clone(),
		W2: n.w2.Clone(),
		B2: n.b2.Clone(),
	}
}

// Restore copies a snapshot's tensors back into the live parameters.
//
// Returns a *tensor.ShapeError if the snapshot was taken from a network
// of different dimensions. Optimizer moments are left untouched.
func (n *Network) Restore(s *Snapshot) error {
	for _, pair := range []struct {
		name string
		dst  *tensor.Dense
		src  *tensor.Dense
	}{
		{"W1", n.w1, s.W1},
		{"b1", n.b1, s.B1},
		{"W2", n.w2, s.W2},
		{"b2", n.b2, s.B2},
	} {
		if err := pair.dst.CopyFrom(pair.src); err != nil {
			return fmt.Errorf("nn.Network.Restore %s: %w", pair.name, err)
		}
	}
	return nil
}
