package nn

import (
	"fmt"

	"github.com/born-ml/shallow/internal/serialization"
	"github.com/born-ml/shallow/internal/tensor"
)

// Parameter-file field names. Fixed: loaders key on these exact names.
const (
	fieldW1 = "W1"
	fieldB1 = "b1"
	fieldW2 = "W2"
	fieldB2 = "b2"
)

// SaveCheckpoint writes the network's current parameters to path.
func SaveCheckpoint(path string, n *Network) error {
	return SaveSnapshot(path, n.Snapshot())
}

// SaveSnapshot writes a parameter snapshot to path.
//
// The selection loop uses this to persist registry entries without
// touching the live network that produced them.
func SaveSnapshot(path string, s *Snapshot) error {
	return serialization.Write(path, []serialization.Entry{
		{Name: fieldW1, Dense: s.W1},
		{Name: fieldB1, Dense: s.B1},
		{Name: fieldW2, Dense: s.W2},
		{Name: fieldB2, Dense: s.B2},
	})
}

// LoadCheckpoint restores a network's parameters from path.
//
// Every field must be present and match the target network's declared
// sizes exactly; otherwise a *serialization.LoadError is returned and
// the network is left unmodified.
func LoadCheckpoint(path string, n *Network) error {
	tensors, err := serialization.Read(path)
	if err != nil {
		return err
	}

	required := []struct {
		name string
		dst  *tensor.Dense
	}{
		{fieldW1, n.w1},
		{fieldB1, n.b1},
		{fieldW2, n.w2},
		{fieldB2, n.b2},
	}

	// Validate everything before mutating anything.
	for _, r := range required {
		src, ok := tensors[r.name]
		if !ok {
			return &serialization.LoadError{Path: path, Err: fmt.Errorf("%w: %q", serialization.ErrMissingTensor, r.name)}
		}
		if !src.SameShape(r.dst) {
			return &serialization.LoadError{
				Path: path,
				Err: fmt.Errorf("%w: %q is %s, network expects %s",
					serialization.ErrShapeMismatch, r.name, src.ShapeString(), r.dst.ShapeString()),
			}
		}
	}

	for _, r := range required {
		if err := r.dst.CopyFrom(tensors[r.name]); err != nil {
			return &serialization.LoadError{Path: path, Err: err}
		}
	}
	return nil
}
