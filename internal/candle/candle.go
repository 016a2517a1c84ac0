// Package candle
package candle

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ekkobit/gander/internal/tfutils"
)

type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Source    string    `json:"source"`
}

// Validate checks if a candle has valid data
func (c *Candle) Validate() error {
	if c.Timestamp.IsZero() {
		return errors.New("candle timestamp is zero")
	}
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return errors.New("candle prices must be positive")
	}
	if c.High < c.Low {
		return errors.New("candle high cannot be less than low")
	}
	if c.Open < c.Low || c.Open > c.High {
		return errors.New("candle open price must be between high and low")
	}
	if c.Close < c.Low || c.Close > c.High {
		return errors.New("candle close price must be between high and low")
	}
	if c.Volume < 0 {
		return errors.New("candle volume cannot be negative")
	}
	if c.Symbol == "" {
		return errors.New("candle symbol cannot be empty")
	}
	if c.Timeframe == "" {
		return errors.New("candle timeframe cannot be empty")
	}
	return nil
}

// Resample aggregates candles of one symbol and timeframe into the larger
// timeframe. Each bucket is stamped with its close time. The input slice is
// not reordered.
func Resample(candles []Candle, timeframe string) ([]Candle, error) {
	if len(candles) == 0 {
		return nil, nil
	}

	dur, err := tfutils.ParseTimeframe(timeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %s: %w", timeframe, err)
	}

	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	symbol := sorted[0].Symbol
	sourceTf := sorted[0].Timeframe
	sourceDur, err := tfutils.ParseTimeframe(sourceTf)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %s: %w", sourceTf, err)
	}
	if sourceDur >= dur || dur%sourceDur != 0 {
		return nil, fmt.Errorf("cannot resample %s candles to %s", sourceTf, timeframe)
	}

	buckets := make(map[time.Time][]Candle)
	for i, c := range sorted {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at index %d: %w", i, err)
		}
		if c.Symbol != symbol {
			return nil, fmt.Errorf("candle at index %d has different symbol: %s, expected: %s", i, c.Symbol, symbol)
		}
		if c.Timeframe != sourceTf {
			return nil, fmt.Errorf("candle at index %d has different timeframe: %s, expected: %s", i, c.Timeframe, sourceTf)
		}
		if i > 0 && !c.Timestamp.After(sorted[i-1].Timestamp) {
			return nil, fmt.Errorf("duplicate candle timestamp %s at index %d", c.Timestamp.Format(time.RFC3339), i)
		}

		bucket := c.Timestamp.Truncate(dur).Add(dur)
		buckets[bucket] = append(buckets[bucket], c)
	}

	result := make([]Candle, 0, len(buckets))
	for bucket, group := range buckets {
		agg := Candle{
			Timestamp: bucket,
			Open:      group[0].Open,
			High:      group[0].High,
			Low:       group[0].Low,
			Close:     group[len(group)-1].Close,
			Symbol:    symbol,
			Timeframe: timeframe,
			Source:    "resampled",
		}
		for _, c := range group {
			agg.High = max(agg.High, c.High)
			agg.Low = min(agg.Low, c.Low)
			agg.Volume += c.Volume
		}

		if err := agg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid aggregated candle for bucket %v: %w", bucket, err)
		}
		result = append(result, agg)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result, nil
}
