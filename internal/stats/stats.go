// Package stats holds the small set of descriptive statistics used by the
// calibrator. All functions treat their input as read-only.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEmpty is returned when a statistic is requested over no values.
var ErrEmpty = errors.New("stats: empty input")

// Average returns the arithmetic mean.
func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// PercentileToValue returns, for each percentile p in [0, 100], the element
// at index floor(p/100*(n-1)) of a sorted copy of values. No interpolation.
func PercentileToValue(values []float64, percentiles ...float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	out := make([]float64, 0, len(percentiles))
	for _, p := range percentiles {
		if p < 0 || p > 100 || math.IsNaN(p) {
			return nil, fmt.Errorf("stats: percentile %v out of range [0, 100]", p)
		}
		idx := int(p / 100.0 * float64(len(sorted)-1))
		out = append(out, sorted[idx])
	}
	return out, nil
}

// Variance is the population variance (divisor n).
func Variance(values []float64) (float64, error) {
	m, err := Average(values)
	if err != nil {
		return 0, err
	}
	s := 0.0
	for _, v := range values {
		d := v - m
		s += d * d
	}
	return s / float64(len(values)), nil
}

// StdDeviation is the square root of Variance.
func StdDeviation(values []float64) (float64, error) {
	v, err := Variance(values)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// MeanStd returns mean and population standard deviation in one call.
func MeanStd(values []float64) (mean, sd float64, err error) {
	mean, err = Average(values)
	if err != nil {
		return 0, 0, err
	}
	sd, err = StdDeviation(values)
	return mean, sd, err
}
