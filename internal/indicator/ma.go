package indicator

import (
	"fmt"
	"math"

	"github.com/ekkobit/gander/internal/frame"
)

// SMAConfig configures a simple moving average.
type SMAConfig struct {
	Window  int
	Columns []string // empty selects open, high, low, close, volume
}

// EMAConfig configures an exponential moving average.
//
// Alpha is the smoothing factor a in ema[i] = a*x[i] + (1-a)*ema[i-1].
// Zero selects the default 2/Window.
type EMAConfig struct {
	Window  int
	Columns []string // empty selects open, high, low, close, volume
	Alpha   float64
}

func (c EMAConfig) alpha() float64 {
	if c.Alpha == 0 {
		return 2 / float64(c.Window)
	}
	return c.Alpha
}

// SMA appends sma_<column>_<window> for every selected column. Row i holds the
// mean of the source over rows [i-window+1, i], counted from the first valid
// row of the source.
func SMA(t *frame.Table, cfg SMAConfig) ([]string, error) {
	if err := checkWindow("sma", cfg.Window, 1); err != nil {
		return nil, err
	}
	srcs, names, err := PickColumns(t, cfg.Window, "sma", cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}

	cols := make([]frame.Column, len(srcs))
	for i, col := range sourceColumns(cfg.Columns) {
		s, ok := sma(srcs[i], cfg.Window)
		if !ok {
			return nil, &InsufficientDataError{Indicator: "sma", Column: col, Window: cfg.Window, Available: len(srcs[i].Valid())}
		}
		cols[i] = frame.FloatColumn(names[i], s)
	}
	if err := t.Extend(cols...); err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	return names, nil
}

// EMA appends ema_<column>_<window> for every selected column.
func EMA(t *frame.Table, cfg EMAConfig) ([]string, error) {
	if err := checkWindow("ema", cfg.Window, 2); err != nil {
		return nil, err
	}
	a := cfg.alpha()
	if a <= 0 || a > 1 || math.IsNaN(a) {
		return nil, fmt.Errorf("ema: alpha %v: %w", a, ErrInvalidAlpha)
	}
	srcs, names, err := PickColumns(t, cfg.Window, "ema", cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}

	cols := make([]frame.Column, len(srcs))
	for i, col := range sourceColumns(cfg.Columns) {
		s, ok := ema(srcs[i], cfg.Window, a)
		if !ok {
			return nil, &InsufficientDataError{Indicator: "ema", Column: col, Window: cfg.Window, Available: len(srcs[i].Valid())}
		}
		cols[i] = frame.FloatColumn(names[i], s)
	}
	if err := t.Extend(cols...); err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	return names, nil
}

// sma keeps a running sum over the window. NaN values are counted rather than
// summed so that a NaN leaves the window cleanly once it slides out.
func sma(src frame.Series, window int) (frame.Series, bool) {
	x := src.Valid()
	if len(x) < window {
		return frame.Series{}, false
	}

	out := make([]float64, len(x)-window+1)
	var sum float64
	nans := 0
	for i, v := range x {
		if math.IsNaN(v) {
			nans++
		} else {
			sum += v
		}
		if i >= window {
			if old := x[i-window]; math.IsNaN(old) {
				nans--
			} else {
				sum -= old
			}
		}
		if i < window-1 {
			continue
		}
		if nans > 0 {
			out[i-window+1] = math.NaN()
		} else {
			out[i-window+1] = sum / float64(window)
		}
	}
	return frame.Align(src.Len(), src.Start+window-1, out), true
}

// ema seeds with the mean of the first window valid values and anchors the
// seed at src.Start+window-1, so chained calls on gapped columns line up.
func ema(src frame.Series, window int, a float64) (frame.Series, bool) {
	x := src.Valid()
	if len(x) < window {
		return frame.Series{}, false
	}

	out := make([]float64, len(x)-window+1)
	var sum float64
	for _, v := range x[:window] {
		sum += v
	}
	prev := sum / float64(window)
	out[0] = prev
	for i := window; i < len(x); i++ {
		prev = a*x[i] + (1-a)*prev
		out[i-window+1] = prev
	}
	return frame.Align(src.Len(), src.Start+window-1, out), true
}
