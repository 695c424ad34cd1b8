// Package config loads the run configuration for the XOR model search.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a full model search.
type Config struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float64 `yaml:"learning_rate"`
	Patience     int     `yaml:"patience"`

	HiddenMin int `yaml:"hidden_min"`
	HiddenMax int `yaml:"hidden_max"`
	Rounds    int `yaml:"rounds"`

	NumSamples int    `yaml:"num_samples"`
	Seed       int64  `yaml:"seed"`
	Dataset    string `yaml:"dataset"`

	BestValPath   string `yaml:"best_val_path"`
	BestTrainPath string `yaml:"best_train_path"`

	// explicitPatience records whether the file supplied patience, so
	// an epochs override knows not to re-derive it.
	explicitPatience bool
}

// Default returns the baseline configuration.
//
// Patience defaults to half the epoch budget when left at zero.
func Default() Config {
	return Config{
		Epochs:        100,
		BatchSize:     16,
		LearningRate:  0.1,
		HiddenMin:     2,
		HiddenMax:     2,
		Rounds:        30,
		NumSamples:    1 << 14,
		Seed:          42,
		Dataset:       "dataset.csv",
		BestValPath:   "best_val_model.shal",
		BestTrainPath: "best_train_model.shal",
	}
}

// Load reads a Config from a YAML file, applies defaults for omitted
// fields, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.explicitPatience = cfg.Patience != 0
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyDefaults fills fields whose defaults depend on other fields.
// Patience left at zero becomes half the epoch budget.
func (c *Config) ApplyDefaults() {
	if c.Patience == 0 {
		c.Patience = c.Epochs / 2
	}
}

// SetEpochs overrides the epoch budget. Patience is re-derived as half
// the new budget unless the config file set it explicitly.
func (c *Config) SetEpochs(epochs int) {
	c.Epochs = epochs
	if !c.explicitPatience {
		c.Patience = epochs / 2
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Epochs <= 0:
		return errors.New("config: epochs must be > 0")
	case c.BatchSize <= 0:
		return errors.New("config: batch_size must be > 0")
	case c.LearningRate <= 0:
		return errors.New("config: learning_rate must be > 0")
	case c.Patience <= 0:
		return errors.New("config: patience must be > 0")
	case c.HiddenMin <= 0 || c.HiddenMax < c.HiddenMin:
		return fmt.Errorf("config: invalid hidden size range [%d, %d]", c.HiddenMin, c.HiddenMax)
	case c.Rounds < 1:
		return errors.New("config: rounds must be >= 1")
	case c.NumSamples < 2:
		return errors.New("config: num_samples must be >= 2")
	}
	return nil
}

// HiddenSizes expands the configured range into a candidate list.
func (c Config) HiddenSizes() []int {
	sizes := make([]int, 0, c.HiddenMax-c.HiddenMin+1)
	for h := c.HiddenMin; h <= c.HiddenMax; h++ {
		sizes = append(sizes, h)
	}
	return sizes
}
