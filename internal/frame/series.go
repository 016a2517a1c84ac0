package frame

import (
	"math"
	"strconv"
)

// OHLCV column names in canonical order.
var OHLCV = []string{"open", "high", "low", "close", "volume"}

// Series is the data of a float column. Values holds one entry per table row.
// Rows before Start are gaps (no value yet) and are stored as NaN. A NaN at or
// after Start is an undefined value, not a gap.
type Series struct {
	Start  int
	Values []float64
}

// TagSeries is the data of a categorical column. Gap rows hold "".
type TagSeries struct {
	Start  int
	Values []string
}

// Align builds a full-length series for a table of n rows from the computed
// valid segment of a column, placed at row start.
func Align(n, start int, valid []float64) Series {
	values := make([]float64, n)
	for i := 0; i < start && i < n; i++ {
		values[i] = math.NaN()
	}
	copy(values[min(start, n):], valid)
	return Series{Start: start, Values: values}
}

// AlignTags is Align for categorical columns.
func AlignTags(n, start int, valid []string) TagSeries {
	values := make([]string, n)
	copy(values[min(start, n):], valid)
	return TagSeries{Start: start, Values: values}
}

// Len returns the number of rows the series spans.
func (s Series) Len() int { return len(s.Values) }

// Valid returns the rows from Start on.
func (s Series) Valid() []float64 {
	if s.Start >= len(s.Values) {
		return nil
	}
	return s.Values[s.Start:]
}

// At returns the value at row i and whether the row is past the gap.
func (s Series) At(i int) (float64, bool) {
	if i < s.Start || i >= len(s.Values) {
		return math.NaN(), false
	}
	return s.Values[i], true
}

// Valid returns the rows from Start on.
func (s TagSeries) Valid() []string {
	if s.Start >= len(s.Values) {
		return nil
	}
	return s.Values[s.Start:]
}

// At returns the tag at row i and whether the row is past the gap.
func (s TagSeries) At(i int) (string, bool) {
	if i < s.Start || i >= len(s.Values) {
		return "", false
	}
	return s.Values[i], true
}

// ColumnName builds the name of a derived column: <indicator>_<column>_<window>.
func ColumnName(indicator, column string, window int) string {
	return indicator + "_" + column + "_" + strconv.Itoa(window)
}
