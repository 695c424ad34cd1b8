package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/shallow/internal/optim"
	"github.com/born-ml/shallow/internal/tensor"
)

// SequenceError reports a lifecycle violation: Backward invoked without
// an immediately preceding Forward on the same input batch.
type SequenceError struct {
	Op string
}

// Error implements the error interface.
func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: backward called without a matching forward pass", e.Op)
}

// Network is a one-hidden-layer feed-forward regressor:
//
//	input → linear → tanh → linear → output
//
// The output activation is the identity; despite the binary target this
// is a regression head trained under mean squared error.
//
// Matrices follow the columns-as-samples convention: an input batch has
// shape [inputSize, batch] and a target batch [outputSize, batch].
//
// A Network owns its four parameter tensors and its optimizer state
// exclusively; parameters are mutated only through the update step.
// Forward caches intermediates for Backward, so a Network is not safe
// for concurrent use.
type Network struct {
	inputSize  int
	hiddenSize int
	outputSize int

	w1 *tensor.Dense // [hiddenSize, inputSize]
	b1 *tensor.Dense // [hiddenSize, 1]
	w2 *tensor.Dense // [outputSize, hiddenSize]
	b2 *tensor.Dense // [outputSize, 1]

	opt *optim.Adam

	// Cached intermediates, overwritten by every Forward call.
	z1     *tensor.Dense
	a1     *tensor.Dense
	output *tensor.Dense

	lastInput *tensor.Dense // Batch the cache belongs to
}

// Initial weight scale, matching small random initialization around zero.
const initScale = 0.01

// New creates a Network with freshly initialized parameters and a new
// Adam optimizer.
//
// Weights are drawn from N(0, 1)·0.01 using rng; biases start at zero.
// Passing the random source explicitly lets independent training rounds
// draw from a single seeded stream.
func New(inputSize, hiddenSize, outputSize int, lr float32, rng *rand.Rand) *Network {
	if inputSize <= 0 || hiddenSize <= 0 || outputSize <= 0 {
		panic(fmt.Sprintf("nn.New: invalid sizes %d/%d/%d (must be > 0)", inputSize, hiddenSize, outputSize))
	}
	return &Network{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		outputSize: outputSize,
		w1:         tensor.Randn(hiddenSize, inputSize, initScale, rng),
		b1:         tensor.Zeros(hiddenSize, 1),
		w2:         tensor.Randn(outputSize, hiddenSize, initScale, rng),
		b2:         tensor.Zeros(outputSize, 1),
		opt:        optim.NewAdam(optim.AdamConfig{LR: lr}),
	}
}

// InputSize returns the number of input features.
func (n *Network) InputSize() int { return n.inputSize }

// HiddenSize returns the number of hidden units.
func (n *Network) HiddenSize() int { return n.hiddenSize }

// OutputSize returns the number of outputs.
func (n *Network) OutputSize() int { return n.outputSize }

// Optimizer returns the network's Adam state.
func (n *Network) Optimizer() *optim.Adam { return n.opt }

// Parameters returns the four parameter tensors in update order:
// W1, b1, W2, b2. The tensors alias live network state.
func (n *Network) Parameters() []*tensor.Dense {
	return []*tensor.Dense{n.w1, n.b1, n.w2, n.b2}
}

// Forward computes the output for an input batch x of shape
// [inputSize, batch] and returns it.
//
// Intermediates are cached for a subsequent Backward call; each Forward
// overwrites the previous cache.
func (n *Network) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	if x.Rows() != n.inputSize {
		return nil, &tensor.ShapeError{
			Op:   "nn.Network.Forward",
			Want: fmt.Sprintf("%dxN input", n.inputSize),
			Got:  x.ShapeString(),
		}
	}

	z1 := tensor.MatMul(n.w1, x)
	z1.AddColVec(n.b1)
	a1 := tensor.Tanh(z1)
	z2 := tensor.MatMul(n.w2, a1)
	z2.AddColVec(n.b2)

	n.z1 = z1
	n.a1 = a1
	n.output = z2
	n.lastInput = x
	return n.output, nil
}

// Predict runs a forward pass and returns the output batch.
func (n *Network) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	return n.Forward(x)
}

// Backward computes analytic mean-squared-error gradients for the batch
// given to the immediately preceding Forward call, then applies one
// optimizer step to all four parameters.
//
// x must be the same batch passed to Forward; y is the matching target
// batch of shape [outputSize, batch]. Gradients are averaged over the
// batch width.
func (n *Network) Backward(x, y *tensor.Dense) error {
	if n.lastInput != x {
		return &SequenceError{Op: "nn.Network.Backward"}
	}
	if y.Rows() != n.outputSize || y.Cols() != x.Cols() {
		return &tensor.ShapeError{
			Op:   "nn.Network.Backward",
			Want: fmt.Sprintf("%dx%d targets", n.outputSize, x.Cols()),
			Got:  y.ShapeString(),
		}
	}

	m := float32(x.Cols())

	// dz2 = output − y
	dz2 := tensor.Sub(n.output, y)

	// dW2 = dz2·a1ᵀ / m
	dw2 := tensor.MatMulABT(dz2, n.a1)
	dw2.Scale(1 / m)

	// db2 = mean of dz2 over the batch
	db2 := tensor.RowMeans(dz2)

	// dz1 = (W2ᵀ·dz2) ⊙ (1 − a1²)
	dz1 := tensor.MatMulATB(n.w2, dz2)
	dz1.MulElem(tensor.OneMinusSquare(n.a1))

	// dW1 = dz1·xᵀ / m
	dw1 := tensor.MatMulABT(dz1, x)
	dw1.Scale(1 / m)

	db1 := tensor.RowMeans(dz1)

	n.update(dw1, db1, dw2, db2)
	return nil
}

// update applies one Adam step to all four parameters. The shared
// timestep inside the optimizer advances once, so the update is atomic
// from the caller's perspective.
func (n *Network) update(dw1, db1, dw2, db2 *tensor.Dense) {
	n.opt.Step(
		[]*tensor.Dense{n.w1, n.b1, n.w2, n.b2},
		[]*tensor.Dense{dw1, db1, dw2, db2},
	)
}
