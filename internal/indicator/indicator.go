// Package indicator computes technical indicators over a frame.Table.
//
// Every indicator reads existing columns and appends its output columns to
// the table, returning the appended names in order. Output columns start with
// a gap where history is insufficient. A failed call leaves the table as it
// was.
package indicator

import (
	"github.com/ekkobit/gander/internal/frame"
)

// Output column names of the composite indicators.
const (
	MACDFast      = "fast"
	MACDSignal    = "signal"
	MACDHistogram = "macd-h"
	StochK        = "%K"
	StochD        = "%D"
	StochDD       = "%%D"
	ImpulseName   = "impulse"
	ForceName     = "force"
	TrueRangeName = "tr"
)

const (
	colOpen   = "open"
	colHigh   = "high"
	colLow    = "low"
	colClose  = "close"
	colVolume = "volume"
)

// Impulse colours.
const (
	Green = "green"
	Red   = "red"
	Blue  = "blue"
)

// PickColumns selects the columns an indicator operates on and the names of
// the columns it will produce, <indicator>_<column>_<window>. An empty columns
// list selects open, high, low, close and volume in that order.
func PickColumns(t *frame.Table, window int, indicator string, columns []string) ([]frame.Series, []string, error) {
	columns = sourceColumns(columns)
	series := make([]frame.Series, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		s, err := t.Float(col)
		if err != nil {
			return nil, nil, err
		}
		series = append(series, s)
		names = append(names, frame.ColumnName(indicator, col, window))
	}
	return series, names, nil
}

func sourceColumns(columns []string) []string {
	if len(columns) == 0 {
		return frame.OHLCV
	}
	return columns
}

func latest(starts ...int) int {
	m := 0
	for _, s := range starts {
		if s > m {
			m = s
		}
	}
	return m
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
