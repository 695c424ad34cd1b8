package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/shallow/internal/tensor"
)

func mustDense(t *testing.T, data []float32, rows, cols int) *tensor.Dense {
	t.Helper()
	d, err := tensor.FromSlice(data, rows, cols)
	require.NoError(t, err)
	return d
}

func TestForward_HandComputed(t *testing.T) {
	net := New(2, 2, 1, 0.1, rand.New(rand.NewSource(1)))
	require.NoError(t, net.Restore(&Snapshot{
		W1: mustDense(t, []float32{1, -1, 0.5, 0.5}, 2, 2),
		B1: mustDense(t, []float32{0.1, -0.2}, 2, 1),
		W2: mustDense(t, []float32{1, 2}, 1, 2),
		B2: mustDense(t, []float32{0.3}, 1, 1),
	}))

	x := mustDense(t, []float32{0.5, -1}, 2, 1)
	out, err := net.Forward(x)
	require.NoError(t, err)
	require.Equal(t, 1, out.Rows())
	require.Equal(t, 1, out.Cols())

	// z1 = W1·x + b1 = [1.6, -0.45]; out = W2·tanh(z1) + b2.
	want := math.Tanh(1.6) + 2*math.Tanh(-0.45) + 0.3
	assert.InDelta(t, want, float64(out.At(0, 0)), 1e-5)
}

func TestForward_ShapeError(t *testing.T) {
	net := New(2, 3, 1, 0.1, rand.New(rand.NewSource(1)))

	_, err := net.Forward(tensor.Zeros(3, 4))
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestBackward_SequenceError(t *testing.T) {
	net := New(2, 3, 1, 0.1, rand.New(rand.NewSource(1)))
	x := tensor.Zeros(2, 4)
	y := tensor.Zeros(1, 4)

	// No forward pass at all.
	err := net.Backward(x, y)
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)

	// Forward on a different batch does not satisfy the contract.
	_, err = net.Forward(tensor.Zeros(2, 4))
	require.NoError(t, err)
	require.ErrorAs(t, net.Backward(x, y), &seqErr)
}

func TestBackward_TargetShapeError(t *testing.T) {
	net := New(2, 3, 1, 0.1, rand.New(rand.NewSource(1)))
	x := tensor.Zeros(2, 4)
	_, err := net.Forward(x)
	require.NoError(t, err)

	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, net.Backward(x, tensor.Zeros(2, 4)), &shapeErr)
	require.ErrorAs(t, net.Backward(x, tensor.Zeros(1, 3)), &shapeErr)
}

// TestBackward_GradientCheck compares analytic gradients against
// central finite differences of the loss surface.
//
// Backward folds its optimizer step in, so the raw gradients are
// recovered from the first-moment accumulators: at t=1 each moment is
// exactly (1-beta1)·g. The implied objective of the analytic gradients
// is sum((out-y)²)/(2·batch), which for a single output row equals
// MSE/2.
func TestBackward_GradientCheck(t *testing.T) {
	const (
		inputSize  = 2
		hiddenSize = 3
		outputSize = 1
		beta1      = 0.9
	)

	rng := rand.New(rand.NewSource(3))
	net := New(inputSize, hiddenSize, outputSize, 0.01, rng)

	// Move the parameters away from the tiny init so the gradients are
	// well scaled for float32 finite differences.
	require.NoError(t, net.Restore(&Snapshot{
		W1: mustDense(t, []float32{0.4, -0.6, 0.3, 0.8, -0.2, 0.5}, hiddenSize, inputSize),
		B1: mustDense(t, []float32{0.1, -0.3, 0.2}, hiddenSize, 1),
		W2: mustDense(t, []float32{0.7, -0.5, 0.4}, outputSize, hiddenSize),
		B2: mustDense(t, []float32{-0.1}, outputSize, 1),
	}))

	x := mustDense(t, []float32{0, 0, 1, 1, 0, 1, 0, 1}, inputSize, 4)
	y := mustDense(t, []float32{0, 1, 1, 0}, outputSize, 4)

	start := flatten(net.Snapshot())

	_, err := net.Forward(x)
	require.NoError(t, err)
	require.NoError(t, net.Backward(x, y))
	require.Equal(t, 1, net.Optimizer().Timestep())

	analytic := make([]float64, 0, len(start))
	for i := 0; i < 4; i++ {
		for _, m := range net.Optimizer().FirstMoment(i).Data() {
			analytic = append(analytic, float64(m)/(1-beta1))
		}
	}

	loss := func(params []float64) float64 {
		probe := New(inputSize, hiddenSize, outputSize, 0.01, rand.New(rand.NewSource(0)))
		unflatten(probe, params)
		out, err := probe.Forward(x)
		if err != nil {
			panic(err)
		}
		return tensor.MSE(out, y) / 2
	}

	numeric := fd.Gradient(nil, loss, start, &fd.Settings{
		Formula: fd.Central,
		Step:    1e-3,
	})

	require.Len(t, analytic, len(numeric))
	for i := range numeric {
		assert.InDelta(t, numeric[i], analytic[i], 2e-3, "gradient mismatch at flat index %d", i)
	}
}

// flatten concatenates the snapshot tensors in update order.
func flatten(s *Snapshot) []float64 {
	var out []float64
	for _, d := range []*tensor.Dense{s.W1, s.B1, s.W2, s.B2} {
		for _, v := range d.Data() {
			out = append(out, float64(v))
		}
	}
	return out
}

// unflatten writes a flat parameter vector into a network in update order.
func unflatten(n *Network, params []float64) {
	i := 0
	for _, d := range n.Parameters() {
		data := d.Data()
		for j := range data {
			data[j] = float32(params[i])
			i++
		}
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	net := New(2, 4, 1, 0.1, rng)
	before := net.Snapshot()

	x := mustDense(t, []float32{0, 1, 1, 0}, 2, 2)
	y := mustDense(t, []float32{1, 1}, 1, 2)
	_, err := net.Forward(x)
	require.NoError(t, err)
	require.NoError(t, net.Backward(x, y))

	// Training moved the parameters.
	assert.False(t, net.Snapshot().W1.Equal(before.W1))

	require.NoError(t, net.Restore(before))
	after := net.Snapshot()
	assert.True(t, after.W1.Equal(before.W1))
	assert.True(t, after.B1.Equal(before.B1))
	assert.True(t, after.W2.Equal(before.W2))
	assert.True(t, after.B2.Equal(before.B2))
}

func TestRestore_ShapeMismatch(t *testing.T) {
	small := New(2, 2, 1, 0.1, rand.New(rand.NewSource(1)))
	big := New(2, 5, 1, 0.1, rand.New(rand.NewSource(2)))
	require.Error(t, small.Restore(big.Snapshot()))
}
