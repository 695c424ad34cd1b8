// Package train implements the single-run training loop: mini-batch
// iteration, per-epoch loss evaluation, early stopping, and best-weight
// checkpoint tracking.
package train

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/shallow/internal/nn"
	"github.com/born-ml/shallow/internal/tensor"
)

// Config holds the knobs for one training run.
//
// There are no implicit defaults: callers pass every value explicitly.
type Config struct {
	Epochs    int // Epoch budget
	BatchSize int // Mini-batch width; the final batch of an epoch may be shorter
	Patience  int // Epochs without validation improvement before stopping
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Epochs <= 0 {
		return errors.New("train: epochs must be > 0")
	}
	if c.BatchSize <= 0 {
		return errors.New("train: batch size must be > 0")
	}
	if c.Patience <= 0 {
		return errors.New("train: patience must be > 0")
	}
	return nil
}

// Outcome reports how a training run terminated.
type Outcome int

const (
	// OutcomeExhausted means the full epoch budget ran without the
	// patience counter ever reaching its limit.
	OutcomeExhausted Outcome = iota
	// OutcomeEarlyStopped means validation loss failed to improve for
	// Patience consecutive epochs and training stopped early.
	OutcomeEarlyStopped
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeEarlyStopped:
		return "early-stopped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Hook observes epoch boundaries. The training core itself performs no
// logging or plotting; subscribers do.
type Hook interface {
	// OnEpochEnd is called after each epoch with the 0-based epoch
	// index and the full-batch training and validation losses.
	OnEpochEnd(epoch int, trainLoss, valLoss float64)
}

// NopHook is a Hook that does nothing.
type NopHook struct{}

// OnEpochEnd implements Hook.
func (NopHook) OnEpochEnd(int, float64, float64) {}

// Result carries everything a training run produces.
type Result struct {
	TrainLoss []float64 // Full-batch training MSE per epoch, append-only
	ValLoss   []float64 // Full-batch validation MSE per epoch, append-only

	// StoppedEpoch is the 0-based epoch index at which early stopping
	// triggered. When the run exhausts its budget it is reported as 0,
	// mirroring the historical convention; use Outcome to tell the two
	// apart.
	StoppedEpoch int
	Outcome      Outcome

	// Snapshots holds one parameter snapshot per completed epoch, in
	// order, for downstream visualization.
	Snapshots []*nn.Snapshot

	// Best is the checkpoint with the lowest validation loss, or nil
	// if no epoch ever improved (validation loss was NaN throughout).
	Best        *nn.Snapshot
	BestValLoss float64
}

// Trainer drives one training run over a Network.
type Trainer struct {
	cfg  Config
	hook Hook
}

// New creates a Trainer. A nil hook is replaced with NopHook.
func New(cfg Config, hook Hook) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hook == nil {
		hook = NopHook{}
	}
	return &Trainer{cfg: cfg, hook: hook}, nil
}

// Fit trains net on (x, y) with validation pair (xVal, yVal).
//
// Per epoch it walks the training set in consecutive batches (ordered,
// not shuffled; partial tail allowed), runs forward and backward on
// each, then evaluates full-batch training and validation MSE. The
// full-batch recomputation after the last mini-batch is intentional:
// full-batch loss differs from the last mini-batch's loss.
//
// On termination the parameters holding the best validation loss are
// restored into net; if no epoch ever improved, the initial parameters
// stay in place. NaN or Inf losses are not masked: they enter the
// histories and comparisons as-is.
func (t *Trainer) Fit(net *nn.Network, x, y, xVal, yVal *tensor.Dense) (*Result, error) {
	if err := checkPair("training", net, x, y); err != nil {
		return nil, err
	}
	if err := checkPair("validation", net, xVal, yVal); err != nil {
		return nil, err
	}

	res := &Result{
		TrainLoss:   make([]float64, 0, t.cfg.Epochs),
		ValLoss:     make([]float64, 0, t.cfg.Epochs),
		Snapshots:   make([]*nn.Snapshot, 0, t.cfg.Epochs),
		BestValLoss: math.Inf(1),
	}

	samples := x.Cols()
	noImprove := 0

	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		for start := 0; start < samples; start += t.cfg.BatchSize {
			end := start + t.cfg.BatchSize
			if end > samples {
				end = samples
			}
			xb := x.ColSlice(start, end)
			yb := y.ColSlice(start, end)
			if _, err := net.Forward(xb); err != nil {
				return nil, err
			}
			if err := net.Backward(xb, yb); err != nil {
				return nil, err
			}
		}

		predTrain, err := net.Predict(x)
		if err != nil {
			return nil, err
		}
		loss := tensor.MSE(predTrain, y)
		res.TrainLoss = append(res.TrainLoss, loss)

		predVal, err := net.Predict(xVal)
		if err != nil {
			return nil, err
		}
		valLoss := tensor.MSE(predVal, yVal)
		res.ValLoss = append(res.ValLoss, valLoss)

		snapshot := net.Snapshot()
		res.Snapshots = append(res.Snapshots, snapshot)

		t.hook.OnEpochEnd(epoch, loss, valLoss)

		if valLoss < res.BestValLoss {
			res.BestValLoss = valLoss
			res.Best = snapshot
			noImprove = 0
		} else {
			noImprove++
		}

		if noImprove >= t.cfg.Patience {
			res.StoppedEpoch = epoch
			res.Outcome = OutcomeEarlyStopped
			break
		}
	}

	if res.Best != nil {
		if err := net.Restore(res.Best); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func checkPair(which string, net *nn.Network, x, y *tensor.Dense) error {
	if x.Rows() != net.InputSize() {
		return &tensor.ShapeError{
			Op:   "train.Trainer.Fit",
			Want: fmt.Sprintf("%dxN %s inputs", net.InputSize(), which),
			Got:  x.ShapeString(),
		}
	}
	if y.Rows() != net.OutputSize() || y.Cols() != x.Cols() {
		return &tensor.ShapeError{
			Op:   "train.Trainer.Fit",
			Want: fmt.Sprintf("%dx%d %s targets", net.OutputSize(), x.Cols(), which),
			Got:  y.ShapeString(),
		}
	}
	return nil
}
