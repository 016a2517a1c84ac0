// Package utils
package utils

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls the process logger. An empty File logs to the console
// only.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultLogConfig logs at info to the console and gander.log.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		File:       "gander.log",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

var (
	logger *zap.Logger
	once   sync.Once
)

// GetLogger returns the process logger, creating a console logger on first
// use if InitLogger has not run.
func GetLogger() *zap.Logger {
	once.Do(func() {
		logger = NewLogger(LogConfig{Level: "info"}, zapcore.AddSync(os.Stderr))
	})
	return logger
}

// InitLogger builds the process logger from cfg and installs it as the zap
// global. Once a logger exists, cfg only has to parse; the logger is kept.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	cfg.Level = level.String()
	once.Do(func() {
		logger = NewLogger(cfg, zapcore.AddSync(os.Stderr))
	})
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// NewLogger tees a console encoder on console with a JSON encoder on a
// rotating file when cfg.File is set. An invalid level falls back to info.
func NewLogger(cfg LogConfig, console zapcore.WriteSyncer) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCfg := encCfg
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, level),
	}

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
