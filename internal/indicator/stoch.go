package indicator

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"

	"github.com/ekkobit/gander/internal/frame"
)

// Stochastic defaults.
const (
	DefaultStochWindow    = 15
	DefaultStochSmoothing = 4
)

// StochConfig configures the stochastic oscillator.
type StochConfig struct {
	Window    int // trailing rows for the extremes, including the current row
	Smoothing int // EMA window for %D and %%D
}

func (c StochConfig) withDefaults() StochConfig {
	if c.Window == 0 {
		c.Window = DefaultStochWindow
	}
	if c.Smoothing == 0 {
		c.Smoothing = DefaultStochSmoothing
	}
	return c
}

// Stochastic appends %K, %D and %%D.
//
// The window high is the rolling max of close and the window low is the
// rolling min of min(open, close). A zero range makes %K NaN, which then
// carries into the smoothed lines.
func Stochastic(t *frame.Table, cfg StochConfig) ([]string, error) {
	cfg = cfg.withDefaults()
	if err := checkWindow("stoch", cfg.Window, 1); err != nil {
		return nil, err
	}
	if err := checkWindow("stoch", cfg.Smoothing, 2); err != nil {
		return nil, err
	}
	closes, err := t.Float(colClose)
	if err != nil {
		return nil, fmt.Errorf("stoch: %w", err)
	}
	opens, err := t.Float(colOpen)
	if err != nil {
		return nil, fmt.Errorf("stoch: %w", err)
	}

	n := t.Len()
	start := latest(closes.Start, opens.Start)
	c := closes.Values[start:]
	if len(c) < cfg.Window {
		return nil, &InsufficientDataError{Indicator: "stoch", Column: colClose, Window: cfg.Window, Available: len(c)}
	}
	bodyLows := make([]float64, len(c))
	for i := range c {
		bodyLows[i] = math.Min(opens.Values[start+i], c[i])
	}

	// working copies only; talib leaves the first window-1 entries at zero
	highs, lows := c, bodyLows
	if cfg.Window > 1 {
		highs = talib.Max(c, cfg.Window)
		lows = talib.Min(bodyLows, cfg.Window)
	}

	k := make([]float64, 0, len(c)-cfg.Window+1)
	for i := cfg.Window - 1; i < len(c); i++ {
		rng := highs[i] - lows[i]
		if rng == 0 {
			k = append(k, math.NaN())
			continue
		}
		k = append(k, 100*(c[i]-lows[i])/rng)
	}
	kSeries := frame.Align(n, start+cfg.Window-1, k)

	a := 2 / float64(cfg.Smoothing)
	d, ok := ema(kSeries, cfg.Smoothing, a)
	if !ok {
		return nil, &InsufficientDataError{Indicator: "stoch", Column: StochK, Window: cfg.Smoothing, Available: len(k)}
	}
	dd, ok := ema(d, cfg.Smoothing, a)
	if !ok {
		return nil, &InsufficientDataError{Indicator: "stoch", Column: StochD, Window: cfg.Smoothing, Available: len(d.Valid())}
	}

	names := []string{StochK, StochD, StochDD}
	err = t.Extend(
		frame.FloatColumn(StochK, kSeries),
		frame.FloatColumn(StochD, d),
		frame.FloatColumn(StochDD, dd),
	)
	if err != nil {
		return nil, fmt.Errorf("stoch: %w", err)
	}
	return names, nil
}
