package analytics

import (
	"testing"

	"eeg-insight/internal/errors"
	"eeg-insight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	mean, err := Mean(models.MetricSeries{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 20.0, mean)

	_, err = Mean(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.Equal(t, errors.ErrEmptyInput, errors.CodeOf(err))
}

func TestBounds(t *testing.T) {
	span, err := Bounds(models.MetricSeries{5, 90, 40})
	require.NoError(t, err)
	assert.Equal(t, models.Span{Min: 5, Max: 90}, span)
	assert.Equal(t, 85, span.Width())

	_, err = Bounds(models.MetricSeries{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name string
		xs   models.MetricSeries
		want float64
	}{
		{"constant", models.MetricSeries{50, 50, 50}, 0},
		{"empty", nil, 0},
		{"single", models.MetricSeries{42}, 0},
		{"population", models.MetricSeries{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StdDev(tt.xs), 1e-9)
		})
	}
}
