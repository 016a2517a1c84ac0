package candle

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekkobit/gander/internal/frame"
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Helper function to create test candles
func createTestCandles(symbol string, timeframe string, timestamps []time.Time, opens, highs, lows, closes, volumes []float64) []Candle {
	candles := make([]Candle, len(timestamps))
	for i := range timestamps {
		candles[i] = Candle{
			Timestamp: timestamps[i],
			Open:      opens[i],
			High:      highs[i],
			Low:       lows[i],
			Close:     closes[i],
			Volume:    volumes[i],
			Symbol:    symbol,
			Timeframe: timeframe,
			Source:    "test",
		}
	}
	return candles
}

func days(n int) []time.Time {
	ts := make([]time.Time, n)
	for i := range ts {
		ts[i] = monday.AddDate(0, 0, i)
	}
	return ts
}

func TestCandle_Validate(t *testing.T) {
	good := Candle{Timestamp: monday, Open: 10, High: 12, Low: 9, Close: 11, Volume: 5, Symbol: "AAPL", Timeframe: "1d"}
	require.NoError(t, good.Validate())

	cases := map[string]func(c *Candle){
		"zero timestamp":     func(c *Candle) { c.Timestamp = time.Time{} },
		"negative price":     func(c *Candle) { c.Low = -1 },
		"high below low":     func(c *Candle) { c.High = 8 },
		"open out of range":  func(c *Candle) { c.Open = 13 },
		"close out of range": func(c *Candle) { c.Close = 8.5 },
		"negative volume":    func(c *Candle) { c.Volume = -1 },
		"empty symbol":       func(c *Candle) { c.Symbol = "" },
		"empty timeframe":    func(c *Candle) { c.Timeframe = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := good
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestResample(t *testing.T) {
	t.Run("Empty candles", func(t *testing.T) {
		result, err := Resample(nil, "1w")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("Daily to weekly", func(t *testing.T) {
		candles := createTestCandles("AAPL", "1d", days(9),
			[]float64{10, 11, 12, 13, 14, 15, 16, 17, 18},
			[]float64{11, 12, 20, 14, 15, 16, 17, 19, 19},
			[]float64{9, 10, 11, 5, 13, 14, 15, 16, 17},
			[]float64{11, 12, 13, 14, 15, 16, 17, 18, 18.5},
			[]float64{1, 1, 1, 1, 1, 1, 1, 2, 3},
		)
		// Reversed input must not matter and must stay untouched.
		reversed := make([]Candle, len(candles))
		for i, c := range candles {
			reversed[len(candles)-1-i] = c
		}

		result, err := Resample(reversed, "1w")
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 18.0, reversed[0].Open)

		week := result[0]
		assert.Equal(t, monday.AddDate(0, 0, 7), week.Timestamp)
		assert.Equal(t, 10.0, week.Open)
		assert.Equal(t, 20.0, week.High)
		assert.Equal(t, 5.0, week.Low)
		assert.Equal(t, 17.0, week.Close)
		assert.Equal(t, 7.0, week.Volume)
		assert.Equal(t, "1w", week.Timeframe)
		assert.Equal(t, "AAPL", week.Symbol)

		next := result[1]
		assert.Equal(t, monday.AddDate(0, 0, 14), next.Timestamp)
		assert.Equal(t, 17.0, next.Open)
		assert.Equal(t, 18.5, next.Close)
		assert.Equal(t, 5.0, next.Volume)
	})

	t.Run("Invalid timeframe", func(t *testing.T) {
		candles := createTestCandles("AAPL", "1d", days(1), []float64{1}, []float64{1}, []float64{1}, []float64{1}, []float64{1})
		_, err := Resample(candles, "invalid")
		assert.Error(t, err)
		_, err = Resample(candles, "4h")
		assert.Error(t, err)
	})

	t.Run("Mixed symbols", func(t *testing.T) {
		candles := createTestCandles("AAPL", "1d", days(2), []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1})
		candles[1].Symbol = "MSFT"
		_, err := Resample(candles, "1w")
		assert.Error(t, err)
	})

	t.Run("Duplicate timestamp", func(t *testing.T) {
		ts := []time.Time{monday, monday}
		candles := createTestCandles("AAPL", "1d", ts, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1})
		_, err := Resample(candles, "1w")
		assert.Error(t, err)
	})
}

func TestHeikinAshi(t *testing.T) {
	assert.Nil(t, HeikinAshi(nil))

	candles := createTestCandles("AAPL", "1d", days(2),
		[]float64{10, 12},
		[]float64{14, 16},
		[]float64{8, 10},
		[]float64{12, 14},
		[]float64{100, 200},
	)
	ha := HeikinAshi(candles)
	require.Len(t, ha, 2)

	// first: close (10+14+8+12)/4 = 11, open (10+12)/2 = 11
	assert.Equal(t, 11.0, ha[0].Close)
	assert.Equal(t, 11.0, ha[0].Open)
	assert.Equal(t, 14.0, ha[0].High)
	assert.Equal(t, 8.0, ha[0].Low)

	// second: close (12+16+10+14)/4 = 13, open (11+11)/2 = 11
	assert.Equal(t, 13.0, ha[1].Close)
	assert.Equal(t, 11.0, ha[1].Open)
	assert.Equal(t, 16.0, ha[1].High)
	assert.Equal(t, 10.0, ha[1].Low)
	assert.Equal(t, 200.0, ha[1].Volume)
	assert.Equal(t, "heikin_ashi", ha[1].Source)
	assert.Equal(t, 12.0, candles[1].Open)
}

func TestToTable(t *testing.T) {
	candles := createTestCandles("AAPL", "1d", days(3),
		[]float64{10, 11, 12},
		[]float64{11, 12, 13},
		[]float64{9, 10, 11},
		[]float64{10.5, 11.5, 12.5},
		[]float64{100, 110, 120},
	)
	tbl, err := ToTable(candles)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, frame.OHLCV, tbl.Names())
	assert.Equal(t, days(3), tbl.Index())

	closes, err := tbl.Float("close")
	require.NoError(t, err)
	assert.Equal(t, 0, closes.Start)
	assert.Equal(t, []float64{10.5, 11.5, 12.5}, closes.Values)

	t.Run("Unordered", func(t *testing.T) {
		swapped := []Candle{candles[1], candles[0]}
		_, err := ToTable(swapped)
		assert.ErrorIs(t, err, frame.ErrUnordered)
	})

	t.Run("Invalid candle", func(t *testing.T) {
		bad := append([]Candle{}, candles...)
		bad[2].High = 1
		_, err := ToTable(bad)
		assert.Error(t, err)
	})
}

func TestReadCSV(t *testing.T) {
	input := `Timestamp,Volume,Open,High,Low,Close,Adj
2024-01-01,100,10,11,9,10.5,1
2024-01-02T00:00:00Z,110,11,12,10,11.5,1
2024-01-03 00:00:00, 120, 12, 13, 11, 12.5,1
`
	candles, err := ReadCSV(strings.NewReader(input), "AAPL", "1d")
	require.NoError(t, err)
	require.Len(t, candles, 3)
	assert.Equal(t, days(3), []time.Time{candles[0].Timestamp, candles[1].Timestamp, candles[2].Timestamp})
	assert.Equal(t, 120.0, candles[2].Volume)
	assert.Equal(t, 12.5, candles[2].Close)
	assert.Equal(t, "AAPL", candles[0].Symbol)
	assert.Equal(t, "1d", candles[0].Timeframe)

	t.Run("Missing header field", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("timestamp,open,high,low,close\n"), "AAPL", "1d")
		assert.ErrorContains(t, err, "volume")
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""), "AAPL", "1d")
		assert.Error(t, err)
	})

	t.Run("Bad number", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("timestamp,open,high,low,close,volume\n2024-01-01,x,1,1,1,1\n"), "AAPL", "1d")
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("Bad timestamp", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("timestamp,open,high,low,close,volume\n01/02/2024,1,1,1,1,1\n"), "AAPL", "1d")
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	tbl, err := frame.New(days(3))
	require.NoError(t, err)
	require.NoError(t, tbl.Extend(
		frame.FloatColumn("close", frame.Series{Values: []float64{1, 2.5, 3}}),
		frame.FloatColumn("sma_close_2", frame.Align(3, 1, []float64{1.75, 2.75})),
		frame.TagColumn("impulse", frame.AlignTags(3, 2, []string{"green"})),
	))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	want := "timestamp,close,sma_close_2,impulse\n" +
		"2024-01-01T00:00:00Z,1,,\n" +
		"2024-01-02T00:00:00Z,2.5,1.75,\n" +
		"2024-01-03T00:00:00Z,3,2.75,green\n"
	assert.Equal(t, want, buf.String())

	t.Run("Round trip through ReadCSV", func(t *testing.T) {
		src := createTestCandles("AAPL", "1d", days(2),
			[]float64{10, 11}, []float64{11, 12}, []float64{9, 10}, []float64{10.5, 11.5}, []float64{100, 110})
		tbl, err := ToTable(src)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, tbl))
		got, err := ReadCSV(&buf, "AAPL", "1d")
		require.NoError(t, err)
		for i := range src {
			src[i].Source = "csv"
		}
		assert.Equal(t, src, got)
	})
}
