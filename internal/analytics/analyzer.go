package analytics

import (
	"eeg-insight/internal/errors"
	"eeg-insight/internal/models"
)

const (
	minReading = 0
	maxReading = 100
)

// Validate checks an analysis request. Attention and meditation must be
// present and non-empty; blink may be empty. Every reading must be in 0-100.
func Validate(req models.AnalyzeRequest) error {
	if len(req.AttentionHistory) == 0 || len(req.MeditationHistory) == 0 {
		return errors.Validation("Missing EEG data (attentionHistory and meditationHistory are required)")
	}

	series := []struct {
		name string
		xs   models.MetricSeries
	}{
		{"attentionHistory", req.AttentionHistory},
		{"meditationHistory", req.MeditationHistory},
		{"blinkHistory", req.BlinkHistory},
	}
	for _, s := range series {
		for i, x := range s.xs {
			if x < minReading || x > maxReading {
				return errors.Validation("%s[%d] = %d is outside %d-%d", s.name, i, x, minReading, maxReading)
			}
		}
	}

	return nil
}

// Summarize derives the FeatureSummary for a validated request.
func Summarize(req models.AnalyzeRequest) (models.FeatureSummary, error) {
	avgAttention, err := Mean(req.AttentionHistory)
	if err != nil {
		return models.FeatureSummary{}, err
	}
	avgMeditation, err := Mean(req.MeditationHistory)
	if err != nil {
		return models.FeatureSummary{}, err
	}

	// Blink is optional: an empty series averages to zero.
	avgBlink, _ := Mean(req.BlinkHistory)

	attentionRange, _ := Bounds(req.AttentionHistory)
	meditationRange, _ := Bounds(req.MeditationHistory)

	return models.FeatureSummary{
		AvgAttention:     avgAttention,
		AvgMeditation:    avgMeditation,
		AvgBlink:         avgBlink,
		AttentionRange:   attentionRange,
		MeditationRange:  meditationRange,
		AttentionStdDev:  StdDev(req.AttentionHistory),
		MeditationStdDev: StdDev(req.MeditationHistory),
		BlinkStdDev:      StdDev(req.BlinkHistory),
		SampleCount:      len(req.AttentionHistory),
	}, nil
}
