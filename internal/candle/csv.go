package candle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ekkobit/gander/internal/frame"
)

const timestampField = "timestamp"

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ReadCSV reads candles from CSV with a header row naming timestamp, open,
// high, low, close and volume in any order. Extra columns are ignored.
func ReadCSV(r io.Reader, symbol, timeframe string) ([]Candle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv input is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	fields := append([]string{timestampField}, frame.OHLCV...)
	for _, f := range fields {
		if _, ok := pos[f]; !ok {
			return nil, fmt.Errorf("csv header is missing %q", f)
		}
	}

	var candles []Candle
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		ts, err := parseTime(rec[pos[timestampField]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var v [5]float64
		for j, name := range frame.OHLCV {
			v[j], err = strconv.ParseFloat(strings.TrimSpace(rec[pos[name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, name, err)
			}
		}

		candles = append(candles, Candle{
			Timestamp: ts,
			Open:      v[0],
			High:      v[1],
			Low:       v[2],
			Close:     v[3],
			Volume:    v[4],
			Symbol:    symbol,
			Timeframe: timeframe,
			Source:    "csv",
		})
	}
	return candles, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// WriteCSV writes the table index and every column in table order. Gap rows
// and undefined values are written as empty fields.
func WriteCSV(w io.Writer, t *frame.Table) error {
	names := t.Names()
	floats := make(map[string]frame.Series, len(names))
	tags := make(map[string]frame.TagSeries)
	for _, name := range names {
		kind, err := t.Kind(name)
		if err != nil {
			return err
		}
		if kind == frame.KindTag {
			s, err := t.Tags(name)
			if err != nil {
				return err
			}
			tags[name] = s
			continue
		}
		s, err := t.Float(name)
		if err != nil {
			return err
		}
		floats[name] = s
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{timestampField}, names...)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(names)+1)
	for i, ts := range t.Index() {
		row[0] = ts.Format(time.RFC3339)
		for j, name := range names {
			row[j+1] = ""
			if s, ok := tags[name]; ok {
				if v, ok := s.At(i); ok {
					row[j+1] = v
				}
				continue
			}
			if v, ok := floats[name].At(i); ok && !math.IsNaN(v) {
				row[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
