// Package app wires the sales pipeline to a display and holds the state of
// the most recent run.
package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tillberg/salesagg/kvstore"
	"github.com/tillberg/salesagg/sales"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// SortConfig controls the console sort utilities that run before the
// aggregation.
type SortConfig struct {
	Enabled         bool `yaml:"enabled"`
	BubbleColumn    int  `yaml:"bubble_column"`
	SelectionColumn int  `yaml:"selection_column"`
}

type Config struct {
	Input string `yaml:"input"`

	// Buckets is the bucket count of the per-product store.
	Buckets int `yaml:"buckets"`

	// Verify recomputes the totals in DuckDB after each run.
	Verify bool `yaml:"verify"`

	// ParquetOut, when set, receives the revenue breakdown.
	ParquetOut string `yaml:"parquet_out"`

	JSON    bool       `yaml:"json"`
	LogFile string     `yaml:"log_file"`
	Debug   bool       `yaml:"debug"`
	Sorts   SortConfig `yaml:"sorts"`
}

func DefaultConfig() Config {
	return Config{
		Input:   "data.csv",
		Buckets: kvstore.DefaultBuckets,
		Sorts: SortConfig{
			Enabled:         true,
			BubbleColumn:    sales.BubbleSortColumn,
			SelectionColumn: sales.SelectionSortColumn,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if c.Buckets < 1 {
		return fmt.Errorf("%w: buckets must be positive, got %d", ErrInvalidConfig, c.Buckets)
	}
	if c.Sorts.BubbleColumn < 0 || c.Sorts.SelectionColumn < 0 {
		return fmt.Errorf("%w: sort columns must not be negative", ErrInvalidConfig)
	}
	return nil
}
