// Package dataset synthesizes the noisy XOR-like dataset and caches it
// as CSV. It is a collaborator of the training core: the core consumes
// the tensors it emits and performs no splitting or scaling itself.
package dataset

import (
	"math/rand"

	"github.com/born-ml/shallow/internal/tensor"
)

// Feature intervals: one band below the 0.5 threshold, one above.
const (
	lowMin  = -0.5
	lowMax  = 0.2
	highMin = 0.8
	highMax = 1.5
)

// binarizeThreshold turns a continuous feature into its XOR operand.
const binarizeThreshold = 0.5

// Set is a dataset in columns-as-samples layout: X is [2, n] and Y is
// [1, n], both float32 and ready for the training core.
type Set struct {
	X *tensor.Dense
	Y *tensor.Dense
}

// Samples returns the number of samples in the set.
func (s *Set) Samples() int { return s.X.Cols() }

// Generate synthesizes n samples of the noisy XOR function.
//
// Each feature is drawn from U(-0.5, 0.2) or U(0.8, 1.5), chosen by a
// fair coin; the label is the XOR of the two features binarized at 0.5.
// The same seed always produces the same set.
func Generate(n int, seed int64) *Set {
	rng := rand.New(rand.NewSource(seed))
	x := tensor.Zeros(2, n)
	y := tensor.Zeros(1, n)

	for i := 0; i < n; i++ {
		var bits [2]bool
		for j := 0; j < 2; j++ {
			var v float64
			if rng.Intn(2) == 0 {
				v = lowMin + rng.Float64()*(lowMax-lowMin)
			} else {
				v = highMin + rng.Float64()*(highMax-highMin)
			}
			x.Set(j, i, float32(v))
			bits[j] = v > binarizeThreshold
		}
		if bits[0] != bits[1] {
			y.Set(0, i, 1)
		}
	}

	return &Set{X: x, Y: y}
}

// Split partitions the set into consecutive train and test subsets,
// with the first trainFrac of samples going to train.
func (s *Set) Split(trainFrac float64) (train, test *Set) {
	n := s.Samples()
	cut := int(trainFrac * float64(n))
	if cut <= 0 || cut >= n {
		panic("dataset.Split: train fraction leaves an empty subset")
	}
	train = &Set{X: s.X.ColSlice(0, cut), Y: s.Y.ColSlice(0, cut)}
	test = &Set{X: s.X.ColSlice(cut, n), Y: s.Y.ColSlice(cut, n)}
	return train, test
}
