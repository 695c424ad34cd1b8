// Package search implements the model-selection loop: repeated training
// rounds across candidate hidden sizes, with best-by-train and
// best-by-validation registries.
package search

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/shallow/internal/nn"
	"github.com/born-ml/shallow/internal/tensor"
	"github.com/born-ml/shallow/internal/train"
)

// Config holds the knobs for one model search.
type Config struct {
	InputSize  int
	OutputSize int

	HiddenSizes  []int   // Candidate hidden-layer widths
	Rounds       int     // Independent training rounds per hidden size
	LearningRate float32 // Adam learning rate for every round
	Seed         int64   // Seeds the stream all round initializations draw from

	Trainer train.Config

	// BestValPath and BestTrainPath, when non-empty, receive the
	// parameters of each new registry leader as it is found.
	BestValPath   string
	BestTrainPath string
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.InputSize <= 0 || c.OutputSize <= 0 {
		return errors.New("search: input and output sizes must be > 0")
	}
	if len(c.HiddenSizes) == 0 {
		return errors.New("search: at least one hidden size is required")
	}
	for _, h := range c.HiddenSizes {
		if h <= 0 {
			return fmt.Errorf("search: invalid hidden size %d", h)
		}
	}
	if c.Rounds < 1 {
		return errors.New("search: rounds must be >= 1")
	}
	if c.LearningRate <= 0 {
		return errors.New("search: learning rate must be > 0")
	}
	return c.Trainer.Validate()
}

// RoundHook observes round boundaries.
type RoundHook interface {
	// OnRoundEnd is called after each round with the hidden size, the
	// 0-based round index, and the run's result.
	OnRoundEnd(hiddenSize, round int, res *train.Result)
}

// Hooks bundles the optional observers the search threads through.
type Hooks struct {
	Epoch train.Hook
	Round RoundHook
}

// SizeSummary aggregates the per-round results for one hidden size.
type SizeSummary struct {
	HiddenSize int
	// MinValLosses holds min(validation history) for each round, in
	// round order, for downstream variance analysis.
	MinValLosses []float64
	Mean         float64
	StdDev       float64
	Min          float64
}

// Report is the outcome of a full search.
type Report struct {
	BestVal   Best
	BestTrain Best
	Sizes     []SizeSummary
}

// Search runs the model-selection loop. Rounds execute strictly
// sequentially on the calling goroutine; nothing is shared across
// rounds except the registries, which only this goroutine mutates.
type Search struct {
	cfg   Config
	hooks Hooks
}

// New creates a Search.
func New(cfg Config, hooks Hooks) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Search{cfg: cfg, hooks: hooks}, nil
}

// Run executes the search over the supplied training and validation
// tensors and returns the final report.
//
// Every round constructs a fresh Network (new random initialization and
// optimizer state) from one seeded stream, trains it to completion, and
// offers its losses to both registries. Persistence failures surface
// immediately; they are not retried.
func (s *Search) Run(x, y, xVal, yVal *tensor.Dense) (*Report, error) {
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	valReg := NewRegistry()
	trainReg := NewRegistry()

	report := &Report{Sizes: make([]SizeSummary, 0, len(s.cfg.HiddenSizes))}

	for _, hiddenSize := range s.cfg.HiddenSizes {
		minVals := make([]float64, 0, s.cfg.Rounds)

		for round := 0; round < s.cfg.Rounds; round++ {
			net := nn.New(s.cfg.InputSize, hiddenSize, s.cfg.OutputSize, s.cfg.LearningRate, rng)
			trainer, err := train.New(s.cfg.Trainer, s.hooks.Epoch)
			if err != nil {
				return nil, err
			}
			res, err := trainer.Fit(net, x, y, xVal, yVal)
			if err != nil {
				return nil, fmt.Errorf("search: hidden size %d round %d: %w", hiddenSize, round, err)
			}

			minVal := floats.Min(res.ValLoss)
			minTrain := floats.Min(res.TrainLoss)
			minVals = append(minVals, minVal)

			// The live parameters now hold the run's best-validation
			// checkpoint (or the initial weights when nothing improved).
			final := net.Snapshot()

			if valReg.Observe(minVal, hiddenSize, res.ValLoss, final) && s.cfg.BestValPath != "" {
				if err := nn.SaveSnapshot(s.cfg.BestValPath, final); err != nil {
					return nil, err
				}
			}
			if trainReg.Observe(minTrain, hiddenSize, res.TrainLoss, final) && s.cfg.BestTrainPath != "" {
				if err := nn.SaveSnapshot(s.cfg.BestTrainPath, final); err != nil {
					return nil, err
				}
			}

			if s.hooks.Round != nil {
				s.hooks.Round.OnRoundEnd(hiddenSize, round, res)
			}
		}

		report.Sizes = append(report.Sizes, SizeSummary{
			HiddenSize:   hiddenSize,
			MinValLosses: minVals,
			Mean:         stat.Mean(minVals, nil),
			StdDev:       stat.StdDev(minVals, nil),
			Min:          floats.Min(minVals),
		})
	}

	report.BestVal = valReg.Best()
	report.BestTrain = trainReg.Best()
	return report, nil
}
