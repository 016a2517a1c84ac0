package indicator

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidWindow    = errors.New("invalid window")
	ErrInvalidAlpha     = errors.New("smoothing factor must be in (0, 1]")
)

// InsufficientDataError is returned when a source column has fewer valid
// values than the window needs. Every window-based indicator raises it rather
// than appending an all-gap column.
type InsufficientDataError struct {
	Indicator string
	Column    string
	Window    int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data in %q: need at least %d values, have %d",
		e.Indicator, e.Column, e.Window, e.Available)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

func checkWindow(indicator string, window, minimum int) error {
	if window < minimum {
		return fmt.Errorf("%s: window %d below %d: %w", indicator, window, minimum, ErrInvalidWindow)
	}
	return nil
}
