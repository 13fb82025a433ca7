package analytics

import (
	"math"

	"eeg-insight/internal/errors"
	"eeg-insight/internal/models"
)

// ErrEmptyInput is returned by Mean and Bounds for an empty series.
var ErrEmptyInput = errors.New(errors.ErrEmptyInput)

// Mean returns the arithmetic mean of xs.
func Mean(xs models.MetricSeries) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}

	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}

	return sum / float64(len(xs)), nil
}

// Bounds returns the minimum and maximum of xs.
func Bounds(xs models.MetricSeries) (models.Span, error) {
	if len(xs) == 0 {
		return models.Span{}, ErrEmptyInput
	}

	span := models.Span{Min: xs[0], Max: xs[0]}
	for _, x := range xs[1:] {
		if x < span.Min {
			span.Min = x
		}
		if x > span.Max {
			span.Max = x
		}
	}

	return span, nil
}

// StdDev returns the population standard deviation of xs.
// Series shorter than two samples have no spread and yield 0.
func StdDev(xs models.MetricSeries) float64 {
	if len(xs) < 2 {
		return 0
	}

	mean, _ := Mean(xs)

	var variance float64
	for _, x := range xs {
		diff := float64(x) - mean
		variance += diff * diff
	}

	return math.Sqrt(variance / float64(len(xs)))
}
