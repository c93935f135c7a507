package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tillberg/salesagg/sales"
)

// State is everything produced by one successful load.
type State struct {
	RunID   uuid.UUID
	Input   string
	Table   sales.Table
	Records []sales.Record
	Summary sales.Summary
}

// Controller owns the current State and pushes it to a Display.
type Controller struct {
	cfg     Config
	display Display
	log     *zap.Logger

	state *State
}

func NewController(cfg Config, display Display, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{cfg: cfg, display: display, log: logger}
}

// State returns the result of the last successful Load, or nil.
func (c *Controller) State() *State {
	return c.state
}

// Load reads the configured input, aggregates it and renders the result.
// A failed load leaves the previous state in place.
func (c *Controller) Load(ctx context.Context) (*State, error) {
	runID := uuid.New()
	log := c.log.With(zap.String("run_id", runID.String()), zap.String("input", c.cfg.Input))

	table, err := sales.ReadTable(c.cfg.Input)
	if err != nil {
		return nil, err
	}
	records, err := table.Records()
	if err != nil {
		log.Warn("rejected input", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", c.cfg.Input, err)
	}
	summary, err := sales.Aggregate(records,
		sales.WithBuckets(c.cfg.Buckets),
		sales.WithLogger(log))
	if err != nil {
		log.Warn("aggregation failed", zap.Error(err))
		return nil, err
	}

	if c.cfg.Verify {
		if err := sales.CrossCheck(ctx, records, summary); err != nil {
			return nil, err
		}
		log.Info("duckdb cross-check passed")
	}
	if c.cfg.ParquetOut != "" {
		if err := writeSharesFile(c.cfg.ParquetOut, summary); err != nil {
			return nil, err
		}
		log.Info("wrote revenue shares", zap.String("path", c.cfg.ParquetOut))
	}

	state := &State{
		RunID:   runID,
		Input:   c.cfg.Input,
		Table:   table,
		Records: records,
		Summary: summary,
	}
	c.state = state

	if c.display != nil {
		if err := c.display.ShowTable(table); err != nil {
			return state, fmt.Errorf("show table: %w", err)
		}
		if err := c.display.ShowSummary(summary); err != nil {
			return state, fmt.Errorf("show summary: %w", err)
		}
	}
	return state, nil
}

func writeSharesFile(path string, summary sales.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	// the parquet writer closes file once the footer is written
	if err := sales.WriteSharesParquet(file, summary); err != nil {
		_ = file.Close()
		return err
	}
	return nil
}
