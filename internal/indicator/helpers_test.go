package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekkobit/gander/internal/frame"
)

// newTable builds a daily table starting 2019-08-20 with the given float
// columns appended in order.
func newTable(t *testing.T, names []string, columns ...[]float64) *frame.Table {
	t.Helper()
	require.Equal(t, len(names), len(columns))
	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	base := time.Date(2019, 8, 20, 0, 0, 0, 0, time.UTC)
	idx := make([]time.Time, n)
	for i := range idx {
		idx[i] = base.AddDate(0, 0, i)
	}
	tbl, err := frame.New(idx)
	require.NoError(t, err)
	for i, name := range names {
		require.NoError(t, tbl.Extend(frame.FloatColumn(name, frame.Series{Values: columns[i]})))
	}
	return tbl
}

// ohlcvTable builds a table whose five OHLCV columns all start as a copy of
// fill, then applies the overrides.
func ohlcvTable(t *testing.T, fill []float64, overrides map[string][]float64) *frame.Table {
	t.Helper()
	cols := make([][]float64, len(frame.OHLCV))
	for i, name := range frame.OHLCV {
		if v, ok := overrides[name]; ok {
			cols[i] = v
			continue
		}
		cols[i] = append([]float64(nil), fill...)
	}
	return newTable(t, frame.OHLCV, cols...)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func mustFloat(t *testing.T, tbl *frame.Table, name string) frame.Series {
	t.Helper()
	s, err := tbl.Float(name)
	require.NoError(t, err)
	return s
}

func assertGaps(t *testing.T, s frame.Series, start int) {
	t.Helper()
	assert.Equal(t, start, s.Start)
	for i := 0; i < start && i < len(s.Values); i++ {
		_, ok := s.At(i)
		assert.False(t, ok, "row %d should be a gap", i)
		assert.True(t, math.IsNaN(s.Values[i]), "row %d should hold NaN", i)
	}
}

func assertSameBits(t *testing.T, want, got []float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, math.Float64bits(want[i]), math.Float64bits(got[i]), "row %d: %v != %v", i, want[i], got[i])
	}
}
