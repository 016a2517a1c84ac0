// Package pipeline applies a configured sequence of indicators to a table.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ekkobit/gander/internal/frame"
	"github.com/ekkobit/gander/internal/indicator"
	"github.com/ekkobit/gander/internal/utils"
)

// Step kinds.
const (
	KindSMA       = "sma"
	KindEMA       = "ema"
	KindMACD      = "macd"
	KindStoch     = "stoch"
	KindImpulse   = "impulse"
	KindForce     = "force"
	KindTrueRange = "tr"
)

var ErrUnknownKind = errors.New("unknown step kind")

// Step is one indicator invocation. Only the fields used by Kind are read.
type Step struct {
	Kind      string   `yaml:"kind"`
	Window    int      `yaml:"window,omitempty"`
	Smoothing int      `yaml:"smoothing,omitempty"`
	Columns   []string `yaml:"columns,omitempty"`
	Alpha     float64  `yaml:"alpha,omitempty"`
	Short     string   `yaml:"short,omitempty"`
	Long      string   `yaml:"long,omitempty"`
	EMA       string   `yaml:"ema,omitempty"`
	Histogram string   `yaml:"histogram,omitempty"`
	High      string   `yaml:"high,omitempty"`
	Low       string   `yaml:"low,omitempty"`
	Close     string   `yaml:"close,omitempty"`
	Volume    string   `yaml:"volume,omitempty"`
	Name      string   `yaml:"name,omitempty"`
}

func (s Step) apply(t *frame.Table) ([]string, error) {
	switch s.Kind {
	case KindSMA:
		return indicator.SMA(t, indicator.SMAConfig{Window: s.Window, Columns: s.Columns})
	case KindEMA:
		return indicator.EMA(t, indicator.EMAConfig{Window: s.Window, Columns: s.Columns, Alpha: s.Alpha})
	case KindMACD:
		return indicator.MACD(t, indicator.MACDConfig{Short: s.Short, Long: s.Long, Window: s.Window})
	case KindStoch:
		return indicator.Stochastic(t, indicator.StochConfig{Window: s.Window, Smoothing: s.Smoothing})
	case KindImpulse:
		return indicator.Impulse(t, indicator.ImpulseConfig{EMA: s.EMA, Histogram: s.Histogram, Name: s.Name})
	case KindForce:
		return indicator.Force(t, indicator.ForceConfig{Close: s.Close, Volume: s.Volume, Name: s.Name})
	case KindTrueRange:
		return indicator.TrueRange(t, indicator.TrueRangeConfig{High: s.High, Low: s.Low, Close: s.Close, Name: s.Name})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// StepResult records the columns one step appended.
type StepResult struct {
	Kind    string
	Columns []string
}

// Result lists the appended columns per step, in step order.
type Result struct {
	Steps []StepResult
}

// Columns returns every appended column in append order.
func (r Result) Columns() []string {
	var names []string
	for _, s := range r.Steps {
		names = append(names, s.Columns...)
	}
	return names
}

// Validate checks that every step has a known kind.
func Validate(steps []Step) error {
	for i, s := range steps {
		switch s.Kind {
		case KindSMA, KindEMA, KindMACD, KindStoch, KindImpulse, KindForce, KindTrueRange:
		default:
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownKind, s.Kind)
		}
	}
	return nil
}

// Run applies steps in order. Steps are validated before the table is
// touched; a failing step stops the run and the columns of earlier steps
// stay appended.
func Run(t *frame.Table, steps []Step) (Result, error) {
	var res Result
	if err := Validate(steps); err != nil {
		return res, err
	}

	log := utils.GetLogger()
	for i, s := range steps {
		began := time.Now()
		names, err := s.apply(t)
		if err != nil {
			log.Error("Indicator step failed",
				zap.Int("step", i+1),
				zap.String("kind", s.Kind),
				zap.Error(err))
			return res, fmt.Errorf("step %d (%s): %w", i+1, s.Kind, err)
		}
		log.Debug("Indicator step applied",
			zap.Int("step", i+1),
			zap.String("kind", s.Kind),
			zap.Strings("columns", names),
			zap.Duration("took", time.Since(began)))
		res.Steps = append(res.Steps, StepResult{Kind: s.Kind, Columns: names})
	}
	return res, nil
}

// DefaultSteps is Elder's triple-screen set: EMA 12/26 of close and their
// MACD, EMA 13 with the impulse system, force index, true range and the
// stochastic.
func DefaultSteps() []Step {
	return []Step{
		{Kind: KindEMA, Window: 12, Columns: []string{"close"}},
		{Kind: KindEMA, Window: 26, Columns: []string{"close"}},
		{Kind: KindMACD, Short: "ema_close_12", Long: "ema_close_26", Window: indicator.DefaultSignalWindow},
		{Kind: KindEMA, Window: 13, Columns: []string{"close"}},
		{Kind: KindImpulse, EMA: "ema_close_13", Histogram: indicator.MACDHistogram},
		{Kind: KindForce},
		{Kind: KindTrueRange},
		{Kind: KindStoch, Window: indicator.DefaultStochWindow, Smoothing: indicator.DefaultStochSmoothing},
	}
}
