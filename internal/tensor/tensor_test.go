package tensor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shallow/internal/tensor"
)

func TestFromSlice_ShapeError(t *testing.T) {
	_, err := tensor.FromSlice([]float32{1, 2, 3}, 2, 2)
	require.Error(t, err)

	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "tensor.FromSlice", shapeErr.Op)
}

func TestMatMul_KnownValues(t *testing.T) {
	// [1 2; 3 4] · [5 6; 7 8] = [19 22; 43 50]
	a, err := tensor.FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{5, 6, 7, 8}, 2, 2)
	require.NoError(t, err)

	c := tensor.MatMul(a, b)
	assert.Equal(t, []float32{19, 22, 43, 50}, c.Data())
}

func TestMatMulABT_MatchesExplicitTranspose(t *testing.T) {
	// a (2×3) · bᵀ for b (4×3) = a·bᵀ (2×4)
	a, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{1, 0, 1, 0, 1, 0, 2, 2, 2, 1, 1, 1}, 4, 3)
	require.NoError(t, err)

	got := tensor.MatMulABT(a, b)
	require.Equal(t, 2, got.Rows())
	require.Equal(t, 4, got.Cols())

	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			var want float32
			for k := 0; k < 3; k++ {
				want += a.At(i, k) * b.At(j, k)
			}
			assert.InDelta(t, want, got.At(i, j), 1e-6)
		}
	}
}

func TestMatMulATB_MatchesExplicitTranspose(t *testing.T) {
	// aᵀ·b for a (3×2), b (3×4) = (2×4)
	a, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{1, 0, 2, 1, 0, 1, 1, 2, 1, 1, 0, 0}, 3, 4)
	require.NoError(t, err)

	got := tensor.MatMulATB(a, b)
	require.Equal(t, 2, got.Rows())
	require.Equal(t, 4, got.Cols())

	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			var want float32
			for k := 0; k < 3; k++ {
				want += a.At(k, i) * b.At(k, j)
			}
			assert.InDelta(t, want, got.At(i, j), 1e-6)
		}
	}
}

// TestMatMul_NonFinitePropagation pins IEEE semantics: a zero
// coefficient against NaN or Inf still contributes NaN, so non-finite
// values are never masked by the product.
func TestMatMul_NonFinitePropagation(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	a, err := tensor.FromSlice([]float32{0, 0}, 1, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{nan, inf}, 2, 1)
	require.NoError(t, err)

	got := tensor.MatMul(a, b)
	assert.True(t, math.IsNaN(float64(got.At(0, 0))), "0·NaN must yield NaN")

	// aᵀ·b with a zero column against NaN targets.
	at, err := tensor.FromSlice([]float32{0, 0}, 2, 1)
	require.NoError(t, err)
	gotATB := tensor.MatMulATB(at, b)
	assert.True(t, math.IsNaN(float64(gotATB.At(0, 0))), "0·NaN must yield NaN")
}

func TestAddColVec_BroadcastsOverColumns(t *testing.T) {
	d, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]float32{10, 20}, 2, 1)
	require.NoError(t, err)

	d.AddColVec(bias)
	assert.Equal(t, []float32{11, 12, 13, 24, 25, 26}, d.Data())
}

func TestTanh_And_OneMinusSquare(t *testing.T) {
	d, err := tensor.FromSlice([]float32{-1, 0, 1}, 1, 3)
	require.NoError(t, err)

	a := tensor.Tanh(d)
	for j := 0; j < 3; j++ {
		assert.InDelta(t, math.Tanh(float64(d.At(0, j))), float64(a.At(0, j)), 1e-6)
	}

	deriv := tensor.OneMinusSquare(a)
	for j := 0; j < 3; j++ {
		want := 1 - a.At(0, j)*a.At(0, j)
		assert.InDelta(t, want, deriv.At(0, j), 1e-6)
	}
}

func TestRowMeans(t *testing.T) {
	d, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	means := tensor.RowMeans(d)
	require.Equal(t, 2, means.Rows())
	require.Equal(t, 1, means.Cols())
	assert.InDelta(t, 2.0, means.At(0, 0), 1e-6)
	assert.InDelta(t, 5.0, means.At(1, 0), 1e-6)
}

func TestColSlice_CopiesColumns(t *testing.T) {
	d, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	s := d.ColSlice(1, 3)
	require.Equal(t, 2, s.Rows())
	require.Equal(t, 2, s.Cols())
	assert.Equal(t, []float32{2, 3, 5, 6}, s.Data())

	// The slice is a copy: mutating it leaves the source untouched.
	s.Set(0, 0, 99)
	assert.Equal(t, float32(2), d.At(0, 1))
}

func TestMSE(t *testing.T) {
	pred, err := tensor.FromSlice([]float32{1, 2, 3, 4}, 1, 4)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float32{1, 2, 5, 8}, 1, 4)
	require.NoError(t, err)

	// Squared errors: 0, 0, 4, 16 → mean 5.
	assert.InDelta(t, 5.0, tensor.MSE(pred, target), 1e-9)
}

func TestRandn_Deterministic(t *testing.T) {
	a := tensor.Randn(3, 3, 0.01, rand.New(rand.NewSource(7)))
	b := tensor.Randn(3, 3, 0.01, rand.New(rand.NewSource(7)))
	assert.True(t, a.Equal(b))

	c := tensor.Randn(3, 3, 0.01, rand.New(rand.NewSource(8)))
	assert.False(t, a.Equal(c))
}

func TestCloneAndCopyFrom(t *testing.T) {
	d, err := tensor.FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	c := d.Clone()
	require.True(t, d.Equal(c))
	c.Set(0, 0, 42)
	assert.Equal(t, float32(1), d.At(0, 0))

	other := tensor.Zeros(3, 2)
	err = other.CopyFrom(d)
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}
