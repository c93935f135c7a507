package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tillberg/alog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tillberg/salesagg/app"
	"github.com/tillberg/salesagg/kvstore"
	"github.com/tillberg/salesagg/sales"
)

func main() {
	cfg, err := parseConfig(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	alog.BailIf(err)

	logger, err := newLogger(cfg)
	alog.BailIf(err)
	defer func() { _ = logger.Sync() }()

	// sorted rows would corrupt the JSON on stdout
	if cfg.Sorts.Enabled && !cfg.JSON {
		printSorted(cfg.Input, sales.SelectionSort, cfg.Sorts.SelectionColumn, logger)
		printSorted(cfg.Input, sales.BubbleSort, cfg.Sorts.BubbleColumn, logger)
	}

	var display app.Display = app.NewTextDisplay(os.Stdout)
	if cfg.JSON {
		display = nil
	}
	controller := app.NewController(cfg, display, logger)

	timer := alog.NewTimer()
	state, err := controller.Load(context.Background())
	if err != nil {
		logger.Fatal("load failed", zap.String("input", cfg.Input), zap.Error(err))
	}
	if !cfg.JSON {
		alog.Log("aggregated %d records from %s in %s", len(state.Records), cfg.Input, timer.Elapsed())
		return
	}
	logger.Info("aggregated", zap.Int("records", len(state.Records)), zap.String("elapsed", fmt.Sprint(timer.Elapsed())))
	if err := app.WriteJSON(os.Stdout, state); err != nil {
		logger.Fatal("write report failed", zap.Error(err))
	}
}

// parseConfig parses args, loads the config file named by -config if any,
// and then applies the flags that were set explicitly on top of it.
func parseConfig(name string, args []string) (app.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "Optional YAML config file; flags override its values.")
	input := fs.String("input", "data.csv", "Sales CSV to load.")
	buckets := fs.Int("buckets", kvstore.DefaultBuckets, "Bucket count of the per-product store.")
	verify := fs.Bool("verify", false, "Recompute per-product totals in DuckDB and compare.")
	parquetOut := fs.String("parquet", "", "Write the revenue breakdown to this Parquet file.")
	jsonOut := fs.Bool("json", false, "Print a JSON report instead of text tables.")
	logFile := fs.String("log-file", "", "Send structured logs to this file instead of stderr.")
	debug := fs.Bool("debug", false, "Enable debug logging.")
	noSort := fs.Bool("no-sort", false, "Skip the console sort printout.")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}

	cfg := app.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(*configPath); err != nil {
			return app.Config{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "buckets":
			cfg.Buckets = *buckets
		case "verify":
			cfg.Verify = *verify
		case "parquet":
			cfg.ParquetOut = *parquetOut
		case "json":
			cfg.JSON = *jsonOut
		case "log-file":
			cfg.LogFile = *logFile
		case "debug":
			cfg.Debug = *debug
		case "no-sort":
			cfg.Sorts.Enabled = !*noSort
		}
	})
	return cfg, cfg.Validate()
}

func newLogger(cfg app.Config) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if !cfg.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if cfg.LogFile != "" {
		config.OutputPaths = []string{cfg.LogFile}
	}
	return config.Build()
}

// printSorted prints the header and sorted rows of path. A column that does
// not hold integers only costs a warning.
func printSorted(path string, algo sales.SortAlgorithm, col int, logger *zap.Logger) {
	table, err := sales.SortFile(path, algo, col)
	if err != nil {
		logger.Warn("sort skipped", zap.String("algorithm", string(algo)), zap.Int("column", col), zap.Error(err))
		return
	}
	fmt.Println(strings.Join(table.Header, ","))
	for _, row := range table.Rows {
		fmt.Println(strings.Join(row, ","))
	}
}
