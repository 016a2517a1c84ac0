package candle

// HeikinAshi returns the Heikin-Ashi transform of candles, which must be
// sorted by timestamp ascending. Symbol, timeframe and volume carry over.
func HeikinAshi(candles []Candle) []Candle {
	if len(candles) == 0 {
		return nil
	}

	out := make([]Candle, len(candles))
	var prev *Candle
	for i, c := range candles {
		out[i] = nextHeikinAshi(prev, c)
		prev = &out[i]
	}
	return out
}

// nextHeikinAshi derives one smoothed candle from the previous smoothed
// candle (nil for the first) and a raw candle.
func nextHeikinAshi(prev *Candle, raw Candle) Candle {
	ha := raw
	ha.Close = (raw.Open + raw.High + raw.Low + raw.Close) / 4
	if prev == nil {
		ha.Open = (raw.Open + raw.Close) / 2
	} else {
		ha.Open = (prev.Open + prev.Close) / 2
	}
	ha.High = max(raw.High, ha.Open, ha.Close)
	ha.Low = min(raw.Low, ha.Open, ha.Close)
	ha.Source = "heikin_ashi"
	return ha
}
