// Command shallow trains a one-hidden-layer XOR regressor, searching
// over hidden sizes and repeated rounds for the best model by training
// and by validation loss.
package main

import (
	"flag"
	"log"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/shallow/internal/config"
	"github.com/born-ml/shallow/internal/dataset"
	"github.com/born-ml/shallow/internal/search"
	"github.com/born-ml/shallow/internal/train"
)

// roundLogger reports each round the way the training log reads:
// early-stopped rounds carry their 1-based stopping epoch.
type roundLogger struct {
	rounds int
}

func (l *roundLogger) OnRoundEnd(hiddenSize, round int, res *train.Result) {
	minTrain := floats.Min(res.TrainLoss)
	minVal := floats.Min(res.ValLoss)
	if res.Outcome == train.OutcomeEarlyStopped {
		log.Printf("hidden=%d round=%d/%d early stopped at epoch %d | train loss=%g, val loss=%g",
			hiddenSize, round+1, l.rounds, res.StoppedEpoch+1, minTrain, minVal)
		return
	}
	log.Printf("hidden=%d round=%d/%d training completed | train loss=%g, val loss=%g",
		hiddenSize, round+1, l.rounds, minTrain, minVal)
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	epochs := flag.Int("epochs", 0, "Override epoch budget")
	rounds := flag.Int("rounds", 0, "Override rounds per hidden size")
	seed := flag.Int64("seed", 0, "Override random seed")
	datasetPath := flag.String("dataset", "", "Override dataset CSV path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *epochs > 0 {
		cfg.SetEpochs(*epochs)
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *datasetPath != "" {
		cfg.Dataset = *datasetPath
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	log.Printf("config: epochs=%d batch_size=%d lr=%g patience=%d hidden=[%d..%d] rounds=%d samples=%d seed=%d",
		cfg.Epochs, cfg.BatchSize, cfg.LearningRate, cfg.Patience,
		cfg.HiddenMin, cfg.HiddenMax, cfg.Rounds, cfg.NumSamples, cfg.Seed)

	set, err := dataset.LoadOrGenerate(cfg.Dataset, cfg.NumSamples, cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to prepare dataset: %v", err)
	}
	log.Printf("dataset: %d samples (%s)", set.Samples(), cfg.Dataset)

	trainSet, testSet := set.Split(0.8)

	s, err := search.New(search.Config{
		InputSize:    2,
		OutputSize:   1,
		HiddenSizes:  cfg.HiddenSizes(),
		Rounds:       cfg.Rounds,
		LearningRate: float32(cfg.LearningRate),
		Seed:         cfg.Seed,
		Trainer: train.Config{
			Epochs:    cfg.Epochs,
			BatchSize: cfg.BatchSize,
			Patience:  cfg.Patience,
		},
		BestValPath:   cfg.BestValPath,
		BestTrainPath: cfg.BestTrainPath,
	}, search.Hooks{Round: &roundLogger{rounds: cfg.Rounds}})
	if err != nil {
		log.Fatalf("Failed to configure search: %v", err)
	}

	report, err := s.Run(trainSet.X, trainSet.Y, testSet.X, testSet.Y)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	for _, size := range report.Sizes {
		log.Printf("hidden=%d: min val loss mean=%g std=%g min=%g",
			size.HiddenSize, size.Mean, size.StdDev, size.Min)
	}
	if !report.BestVal.Updated() || !report.BestTrain.Updated() {
		log.Print("no round ever improved; nothing persisted")
		os.Exit(1)
	}
	log.Printf("best hidden size: train=%d (loss=%g), val=%d (loss=%g)",
		report.BestTrain.HiddenSize, report.BestTrain.Loss,
		report.BestVal.HiddenSize, report.BestVal.Loss)
	log.Printf("best models saved to %s and %s", cfg.BestTrainPath, cfg.BestValPath)
}
