package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ekkobit/gander/internal/candle"
	"github.com/ekkobit/gander/internal/config"
	"github.com/ekkobit/gander/internal/pipeline"
	"github.com/ekkobit/gander/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig()

	logger, err := utils.InitLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting gander",
		zap.String("symbol", cfg.Symbol),
		zap.String("timeframe", cfg.Timeframe),
		zap.Int("steps", len(cfg.Steps)))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Indicator run failed", zap.Error(err))
	}
}

// run loads candles, applies the configured candle transforms and indicator
// steps, and writes the resulting table.
func run(cfg config.Config, logger *zap.Logger) error {
	began := time.Now()

	in, closeIn, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	candles, err := candle.ReadCSV(in, cfg.Symbol, cfg.Timeframe)
	closeIn()
	if err != nil {
		return fmt.Errorf("failed to read candles from %s: %w", cfg.Input, err)
	}
	logger.Info("Loaded candles", zap.String("input", cfg.Input), zap.Int("count", len(candles)))

	if cfg.Resample != "" {
		candles, err = candle.Resample(candles, cfg.Resample)
		if err != nil {
			return fmt.Errorf("failed to resample candles: %w", err)
		}
		logger.Info("Resampled candles", zap.String("timeframe", cfg.Resample), zap.Int("count", len(candles)))
	}
	if cfg.HeikinAshi {
		candles = candle.HeikinAshi(candles)
		logger.Debug("Converted candles to Heikin-Ashi")
	}

	table, err := candle.ToTable(candles)
	if err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}

	res, err := pipeline.Run(table, cfg.Steps)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	if err := candle.WriteCSV(out, table); err != nil {
		closeOut()
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close %s: %w", cfg.Output, err)
	}

	logger.Info("Saved results",
		zap.String("output", cfg.Output),
		zap.Int("rows", table.Len()),
		zap.Strings("columns", res.Columns()),
		zap.Duration("took", time.Since(began)))
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == config.Stdio {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == config.Stdio {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}
