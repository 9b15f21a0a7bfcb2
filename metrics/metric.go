// Package metrics measures properties of solved match trees, such as how
// long matches last and how much they reward skill, and averages them over
// many simulated matches.
package metrics

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
)

// Info describes a metric and the axes of its Series.
type Info struct {
	Title string
	XAxis string
	YAxis string
}

// Point is one measurement of a metric.
type Point struct {
	X float64
	Y float64
}

// Series is the measurement of a metric for one match, or the average over
// many matches.
type Series []Point

// Metric is a property of a solved match tree.
type Metric interface {
	Info() Info
	MeasureMatch(tree *hearthnash.Tree) (Series, error)
}

// Average returns the element-wise mean of the given measurements,
// which must all have the same X values.
func Average(measurements []Series) (Series, error) {
	if len(measurements) == 0 {
		return nil, errors.New("no measurements to average")
	}

	result := make(Series, len(measurements[0]))
	for j, pt := range measurements[0] {
		result[j].X = pt.X
	}

	for i, series := range measurements {
		if len(series) != len(result) {
			return nil, errors.Errorf("measurement %d has %d points, expected %d", i, len(series), len(result))
		}

		for j, pt := range series {
			if pt.X != result[j].X {
				return nil, errors.Errorf("measurement %d has x = %v at point %d, expected %v", i, pt.X, j, result[j].X)
			}

			result[j].Y += pt.Y
		}
	}

	n := float64(len(measurements))
	for j := range result {
		result[j].Y /= n
	}

	return result, nil
}
