package indicator

import (
	"fmt"
	"math"

	"github.com/ekkobit/gander/internal/frame"
)

// ImpulseConfig names the trend and momentum columns of the impulse system,
// normally an EMA(13) column and macd-h.
type ImpulseConfig struct {
	EMA       string
	Histogram string
	Name      string // defaults to impulse
}

// ForceConfig configures the force index. Empty fields take the defaults
// close, volume and force.
type ForceConfig struct {
	Close  string
	Volume string
	Name   string
}

// TrueRangeConfig configures the true range. Empty fields take the defaults
// high, low, close and tr.
type TrueRangeConfig struct {
	High  string
	Low   string
	Close string
	Name  string
}

// Impulse appends Elder's impulse colour. For each pair of adjacent rows where
// both inputs are valid: green if both rose, red if both fell, blue otherwise.
// The first valid row has no predecessor and stays a gap.
func Impulse(t *frame.Table, cfg ImpulseConfig) ([]string, error) {
	name := orDefault(cfg.Name, ImpulseName)
	trend, err := t.Float(cfg.EMA)
	if err != nil {
		return nil, fmt.Errorf("impulse: %w", err)
	}
	momentum, err := t.Float(cfg.Histogram)
	if err != nil {
		return nil, fmt.Errorf("impulse: %w", err)
	}

	n := t.Len()
	start := latest(trend.Start, momentum.Start)
	tags := make([]string, 0, max(n-start-1, 0))
	for i := start + 1; i < n; i++ {
		tags = append(tags, impulseColor(
			trend.Values[i-1], trend.Values[i],
			momentum.Values[i-1], momentum.Values[i],
		))
	}

	if err := t.Extend(frame.TagColumn(name, frame.AlignTags(n, min(start+1, n), tags))); err != nil {
		return nil, fmt.Errorf("impulse: %w", err)
	}
	return []string{name}, nil
}

func impulseColor(prevTrend, trend, prevMomentum, momentum float64) string {
	switch {
	case trend > prevTrend && momentum > prevMomentum:
		return Green
	case trend < prevTrend && momentum < prevMomentum:
		return Red
	default:
		return Blue
	}
}

// Force appends Elder's force index: (close[i] - close[i-1]) * volume[i].
func Force(t *frame.Table, cfg ForceConfig) ([]string, error) {
	name := orDefault(cfg.Name, ForceName)
	closes, err := t.Float(orDefault(cfg.Close, colClose))
	if err != nil {
		return nil, fmt.Errorf("force: %w", err)
	}
	volumes, err := t.Float(orDefault(cfg.Volume, colVolume))
	if err != nil {
		return nil, fmt.Errorf("force: %w", err)
	}

	n := t.Len()
	start := min(latest(closes.Start+1, volumes.Start), n)
	force := make([]float64, 0, n-start)
	for i := start; i < n; i++ {
		force = append(force, (closes.Values[i]-closes.Values[i-1])*volumes.Values[i])
	}

	if err := t.Extend(frame.FloatColumn(name, frame.Align(n, start, force))); err != nil {
		return nil, fmt.Errorf("force: %w", err)
	}
	return []string{name}, nil
}

// TrueRange appends max(|high-low|, |high-prev close|, |low-prev close|).
// Row 0 has no previous close and stays a gap.
func TrueRange(t *frame.Table, cfg TrueRangeConfig) ([]string, error) {
	name := orDefault(cfg.Name, TrueRangeName)
	highs, err := t.Float(orDefault(cfg.High, colHigh))
	if err != nil {
		return nil, fmt.Errorf("tr: %w", err)
	}
	lows, err := t.Float(orDefault(cfg.Low, colLow))
	if err != nil {
		return nil, fmt.Errorf("tr: %w", err)
	}
	closes, err := t.Float(orDefault(cfg.Close, colClose))
	if err != nil {
		return nil, fmt.Errorf("tr: %w", err)
	}

	n := t.Len()
	start := min(latest(highs.Start, lows.Start, closes.Start+1), n)
	tr := make([]float64, 0, n-start)
	for i := start; i < n; i++ {
		h, l, pc := highs.Values[i], lows.Values[i], closes.Values[i-1]
		tr = append(tr, math.Max(math.Abs(h-l), math.Max(math.Abs(h-pc), math.Abs(l-pc))))
	}

	if err := t.Extend(frame.FloatColumn(name, frame.Align(n, start, tr))); err != nil {
		return nil, fmt.Errorf("tr: %w", err)
	}
	return []string{name}, nil
}
