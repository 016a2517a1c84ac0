// Package config
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ekkobit/gander/internal/pipeline"
	"github.com/ekkobit/gander/internal/tfutils"
	"github.com/ekkobit/gander/internal/utils"
)

/*
YAML config example:
input: "data/aapl_daily.csv"
output: "out/aapl_indicators.csv"
symbol: "AAPL"
timeframe: "1d"
resample: "1w"
heikin_ashi: false
log:
  level: "debug"
  file: "gander.log"
  max_size_mb: 50
  max_backups: 3
  max_age_days: 28
  compress: true
steps:
  - { kind: ema, window: 12, columns: [close] }
  - { kind: ema, window: 26, columns: [close] }
  - { kind: macd, short: ema_close_12, long: ema_close_26 }
  - { kind: ema, window: 13, columns: [close] }
  - { kind: impulse, ema: ema_close_13, histogram: macd-h }
  - { kind: stoch, window: 15, smoothing: 4 }
...
*/

// Stdio selects standard input or output in place of a file path.
const Stdio = "-"

type Config struct {
	Input      string          `yaml:"input"`
	Output     string          `yaml:"output"`
	Symbol     string          `yaml:"symbol"`
	Timeframe  string          `yaml:"timeframe"`
	Resample   string          `yaml:"resample"`
	HeikinAshi bool            `yaml:"heikin_ashi"`
	Log        utils.LogConfig `yaml:"log"`
	Steps      []pipeline.Step `yaml:"steps"`
}

// Default reads stdin and writes stdout, computing the triple-screen set on
// daily candles.
func Default() Config {
	return Config{
		Input:     Stdio,
		Output:    Stdio,
		Symbol:    "UNKNOWN",
		Timeframe: "1d",
		Log:       utils.DefaultLogConfig(),
		Steps:     pipeline.DefaultSteps(),
	}
}

// Validate checks the timeframes, log level and pipeline steps.
func (c Config) Validate() error {
	if c.Symbol == "" {
		return errors.New("symbol cannot be empty")
	}
	if !tfutils.IsValidTimeframe(c.Timeframe) {
		return fmt.Errorf("invalid timeframe %q", c.Timeframe)
	}
	if c.Resample != "" {
		src, _ := tfutils.ParseTimeframe(c.Timeframe)
		dst, err := tfutils.ParseTimeframe(c.Resample)
		if err != nil {
			return fmt.Errorf("invalid resample timeframe: %w", err)
		}
		if dst <= src {
			return fmt.Errorf("resample timeframe %s must be larger than %s", c.Resample, c.Timeframe)
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if len(c.Steps) == 0 {
		return errors.New("no indicator steps configured")
	}
	return pipeline.Validate(c.Steps)
}

// Load builds the config from defaults, then the YAML file named by -config,
// then any flags given explicitly.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("gander", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to YAML config file")
	input := fs.String("input", Stdio, "Input CSV with timestamp,open,high,low,close,volume (- for stdin)")
	output := fs.String("output", Stdio, "Output CSV (- for stdout)")
	symbol := fs.String("symbol", "", "Symbol recorded on the candles")
	timeframe := fs.String("timeframe", "", "Timeframe of the input candles (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w)")
	resample := fs.String("resample", "", "Resample candles to a larger timeframe before computing")
	heikinAshi := fs.Bool("heikin-ashi", false, "Convert candles to Heikin-Ashi before computing")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn or error")
	logFile := fs.String("log-file", "", "Rotating log file (empty keeps the configured file)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "symbol":
			cfg.Symbol = *symbol
		case "timeframe":
			cfg.Timeframe = *timeframe
		case "resample":
			cfg.Resample = *resample
		case "heikin-ashi":
			cfg.HeikinAshi = *heikinAshi
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-file":
			cfg.Log.File = *logFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoadConfig loads the config from the command line or exits.
func MustLoadConfig() Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
