package candle

import (
	"fmt"
	"time"

	"github.com/ekkobit/gander/internal/frame"
)

// ToTable builds an OHLCV table indexed by candle timestamp. Candles must be
// valid and strictly increasing in time.
func ToTable(candles []Candle) (*frame.Table, error) {
	n := len(candles)
	index := make([]time.Time, n)
	cols := make([][]float64, len(frame.OHLCV))
	for j := range cols {
		cols[j] = make([]float64, n)
	}

	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at index %d: %w", i, err)
		}
		index[i] = c.Timestamp
		cols[0][i] = c.Open
		cols[1][i] = c.High
		cols[2][i] = c.Low
		cols[3][i] = c.Close
		cols[4][i] = c.Volume
	}

	t, err := frame.New(index)
	if err != nil {
		return nil, fmt.Errorf("failed to index candles: %w", err)
	}

	columns := make([]frame.Column, len(frame.OHLCV))
	for j, name := range frame.OHLCV {
		columns[j] = frame.FloatColumn(name, frame.Series{Values: cols[j]})
	}
	if err := t.Extend(columns...); err != nil {
		return nil, err
	}
	return t, nil
}
