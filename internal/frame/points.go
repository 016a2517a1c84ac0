package frame

import (
	"math"
	"time"
)

// Point is one drawable value of a column.
type Point struct {
	Time  time.Time
	Value float64
}

// Points returns the drawable values of a float column: gap rows and
// undefined (NaN) values are left out so a chart never draws them as zero.
func (t *Table) Points(name string) ([]Point, error) {
	s, err := t.Float(name)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, len(s.Valid()))
	for i := s.Start; i < len(s.Values); i++ {
		if math.IsNaN(s.Values[i]) {
			continue
		}
		points = append(points, Point{Time: t.index[i], Value: s.Values[i]})
	}
	return points, nil
}
