package indicator

import (
	"fmt"

	"github.com/ekkobit/gander/internal/frame"
)

// DefaultSignalWindow is the EMA window of the MACD signal line.
const DefaultSignalWindow = 9

// MACDConfig names the two EMA columns MACD is built from.
type MACDConfig struct {
	Short  string // fast EMA column, e.g. ema_close_12
	Long   string // slow EMA column, e.g. ema_close_26
	Window int    // signal window, 0 selects DefaultSignalWindow
}

// MACD appends fast (short - long), signal (EMA of fast) and macd-h
// (fast - signal).
func MACD(t *frame.Table, cfg MACDConfig) ([]string, error) {
	window := cfg.Window
	if window == 0 {
		window = DefaultSignalWindow
	}
	if err := checkWindow("macd", window, 2); err != nil {
		return nil, err
	}
	short, err := t.Float(cfg.Short)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	long, err := t.Float(cfg.Long)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}

	n := t.Len()
	start := latest(short.Start, long.Start)
	diff := make([]float64, 0, max(n-start, 0))
	for i := start; i < n; i++ {
		diff = append(diff, short.Values[i]-long.Values[i])
	}
	fast := frame.Align(n, start, diff)

	signal, ok := ema(fast, window, 2/float64(window))
	if !ok {
		return nil, &InsufficientDataError{Indicator: "macd", Column: MACDFast, Window: window, Available: len(diff)}
	}

	hist := make([]float64, 0, max(n-signal.Start, 0))
	for i := signal.Start; i < n; i++ {
		hist = append(hist, fast.Values[i]-signal.Values[i])
	}

	names := []string{MACDFast, MACDSignal, MACDHistogram}
	err = t.Extend(
		frame.FloatColumn(MACDFast, fast),
		frame.FloatColumn(MACDSignal, signal),
		frame.FloatColumn(MACDHistogram, frame.Align(n, signal.Start, hist)),
	)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	return names, nil
}
