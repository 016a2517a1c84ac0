// Package tfutils
package tfutils

import (
	"fmt"
	"time"
)

// timeframes lists the supported bar widths, smallest first.
var timeframes = []struct {
	name string
	dur  time.Duration
}{
	{"1m", time.Minute},
	{"5m", 5 * time.Minute},
	{"15m", 15 * time.Minute},
	{"30m", 30 * time.Minute},
	{"1h", time.Hour},
	{"4h", 4 * time.Hour},
	{"1d", 24 * time.Hour},
	{"1w", 7 * 24 * time.Hour},
}

// ParseTimeframe parses timeframe string (e.g., "5m", "1h") to time.Duration
func ParseTimeframe(timeframe string) (time.Duration, error) {
	for _, tf := range timeframes {
		if tf.name == timeframe {
			return tf.dur, nil
		}
	}
	return 0, fmt.Errorf("unsupported timeframe %q", timeframe)
}

// GetSupportedTimeframes returns all supported timeframes
func GetSupportedTimeframes() []string {
	names := make([]string, len(timeframes))
	for i, tf := range timeframes {
		names[i] = tf.name
	}
	return names
}

// IsValidTimeframe checks if a timeframe is supported
func IsValidTimeframe(timeframe string) bool {
	_, err := ParseTimeframe(timeframe)
	return err == nil
}
