package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/born-ml/shallow/internal/tensor"
)

var csvHeader = []string{"x1", "x2", "y"}

// LoadOrGenerate returns the cached dataset at path when the file
// exists, otherwise generates n samples with seed and writes the cache
// before returning it.
func LoadOrGenerate(path string, n int, seed int64) (*Set, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadCSV(path)
	}
	set := Generate(n, seed)
	if err := set.SaveCSV(path); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadCSV reads a dataset cache written by SaveCSV.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset: %s is empty or missing header", path)
	}
	records = records[1:] // header row

	n := len(records)
	x := tensor.Zeros(2, n)
	y := tensor.Zeros(1, n)
	for i, rec := range records {
		if len(rec) != 3 {
			return nil, fmt.Errorf("dataset: %s row %d: want 3 fields, got %d", path, i+2, len(rec))
		}
		for j := 0; j < 2; j++ {
			v, err := strconv.ParseFloat(rec[j], 32)
			if err != nil {
				return nil, fmt.Errorf("dataset: %s row %d column %s: %w", path, i+2, csvHeader[j], err)
			}
			x.Set(j, i, float32(v))
		}
		label, err := strconv.ParseFloat(rec[2], 32)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s row %d column y: %w", path, i+2, err)
		}
		y.Set(0, i, float32(label))
	}

	return &Set{X: x, Y: y}, nil
}

// SaveCSV writes the dataset to path with an x1,x2,y header.
func (s *Set) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	n := s.Samples()
	for i := 0; i < n; i++ {
		rec := []string{
			strconv.FormatFloat(float64(s.X.At(0, i)), 'g', -1, 32),
			strconv.FormatFloat(float64(s.X.At(1, i)), 'g', -1, 32),
			strconv.FormatFloat(float64(s.Y.At(0, i)), 'g', -1, 32),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("dataset: write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}
