package search

import (
	"math"

	"github.com/born-ml/shallow/internal/nn"
)

// Best is one best-model registry entry.
type Best struct {
	Loss       float64
	HiddenSize int
	History    []float64
	Snapshot   *nn.Snapshot
}

// Updated reports whether any round ever claimed the entry.
func (b Best) Updated() bool {
	return b.Snapshot != nil
}

// Registry tracks the lowest loss seen across all rounds for a single
// criterion (train loss or validation loss).
//
// Updates use a strict < comparison, so ties keep the earlier model and
// NaN losses never displace an entry. The registry lives for the whole
// search and is mutated only from the goroutine driving it.
type Registry struct {
	best Best
}

// NewRegistry creates an empty registry whose threshold is +Inf.
func NewRegistry() *Registry {
	return &Registry{best: Best{Loss: math.Inf(1)}}
}

// Observe offers a round result to the registry. It replaces the entry
// and returns true only when loss is strictly lower than the best seen
// so far; otherwise the registry is untouched.
func (r *Registry) Observe(loss float64, hiddenSize int, history []float64, snapshot *nn.Snapshot) bool {
	if !(loss < r.best.Loss) {
		return false
	}
	r.best = Best{
		Loss:       loss,
		HiddenSize: hiddenSize,
		History:    history,
		Snapshot:   snapshot,
	}
	return true
}

// Best returns the current entry. Check Updated before trusting it.
func (r *Registry) Best() Best {
	return r.best
}
