package analytics

import (
	"fmt"
	"math"

	"eeg-insight/internal/models"
)

// Classification thresholds on the 0-100 reading scale.
const (
	highAttention       = 70.0
	lowMeditation       = 40.0
	lowAttention        = 40.0
	highMeditation      = 70.0
	balancedHigh        = 60.0
	tiredCeiling        = 40.0
	variableRange       = 30
	highlyVariableRange = 40
)

// Stress scores per branch.
const (
	stressFocused  = 75
	stressRelaxed  = 25
	stressHappy    = 30
	stressVariable = 85
	stressDefault  = 50
)

// Classification is the output of the rule-based classifier.
type Classification struct {
	State          models.MentalState
	Analysis       string
	Recommendation string
	StressLevel    int
}

// Result renders c as an offline AnalysisResult.
func (c Classification) Result() models.AnalysisResult {
	return models.AnalysisResult{
		Success:        true,
		MentalState:    c.State.Offline(),
		Analysis:       c.Analysis,
		Recommendation: c.Recommendation,
		StressLevel:    c.StressLevel,
		Source:         models.SourceOffline,
	}
}

type labelText struct {
	analysis       func(f models.FeatureSummary) string
	recommendation string
}

// labelTexts holds the fixed analysis and recommendation per label.
var labelTexts = map[models.MentalState]labelText{
	models.Focused: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Your attention levels are high (%d%%) while meditation is lower (%d%%). You're in a concentrated state, actively engaging with tasks.",
				round(f.AvgAttention), round(f.AvgMeditation))
		},
		recommendation: "Take short breaks every 25 minutes to prevent burnout. Try the 20-20-20 rule: look at something 20 feet away for 20 seconds.",
	},
	models.Relaxed: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Your meditation levels are high (%d%%) with lower attention (%d%%). You're in a calm, peaceful state - great for recovery.",
				round(f.AvgMeditation), round(f.AvgAttention))
		},
		recommendation: "Great job relaxing! If you need to focus, try deep breathing exercises or light physical activity to increase alertness.",
	},
	models.Happy: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Both attention (%d%%) and meditation (%d%%) are balanced and high. You're in an optimal mental state!",
				round(f.AvgAttention), round(f.AvgMeditation))
		},
		recommendation: "Excellent mental state! Maintain this balance with regular breaks, hydration, and mindful breathing.",
	},
	models.Tired: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Both attention (%d%%) and meditation (%d%%) are low. Your brain may be fatigued and needs rest.",
				round(f.AvgAttention), round(f.AvgMeditation))
		},
		recommendation: "Consider taking a 15-20 minute power nap, getting fresh air, or doing light stretching to re-energize.",
	},
	models.Stressed: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Your brainwave patterns show high variability (attention range: %d-%d%%, meditation range: %d-%d%%). This indicates mental stress or distraction.",
				f.AttentionRange.Min, f.AttentionRange.Max, f.MeditationRange.Min, f.MeditationRange.Max)
		},
		recommendation: "Try 5 minutes of deep breathing: inhale for 4 counts, hold for 4, exhale for 4. Reduce multitasking if possible.",
	},
	models.Neutral: {
		analysis: func(f models.FeatureSummary) string {
			return fmt.Sprintf("Your brainwave patterns are relatively stable. Attention at %d%% and meditation at %d%%.",
				round(f.AvgAttention), round(f.AvgMeditation))
		},
		recommendation: "Stay consistent with your current routine. Take breaks when needed and stay hydrated.",
	},
}

// classifyRule maps a summary to a label when its predicate holds.
type classifyRule struct {
	state models.MentalState
	match func(f models.FeatureSummary) bool
}

// classifyRules are evaluated in order; the first match wins.
var classifyRules = []classifyRule{
	{models.Focused, func(f models.FeatureSummary) bool {
		return f.AvgAttention > highAttention && f.AvgMeditation < lowMeditation
	}},
	{models.Relaxed, func(f models.FeatureSummary) bool {
		return f.AvgAttention < lowAttention && f.AvgMeditation > highMeditation
	}},
	{models.Happy, func(f models.FeatureSummary) bool {
		return f.AvgAttention > balancedHigh && f.AvgMeditation > balancedHigh
	}},
	{models.Tired, func(f models.FeatureSummary) bool {
		return f.AvgAttention < tiredCeiling && f.AvgMeditation < tiredCeiling
	}},
	{models.Stressed, func(f models.FeatureSummary) bool {
		return f.AttentionRange.Width() > variableRange || f.MeditationRange.Width() > variableRange
	}},
}

// Classify runs the deterministic rule-based classifier.
func Classify(f models.FeatureSummary) Classification {
	state := models.Neutral
	for _, rule := range classifyRules {
		if rule.match(f) {
			state = rule.state
			break
		}
	}

	text := labelTexts[state]
	return Classification{
		State:          state,
		Analysis:       text.analysis(f),
		Recommendation: text.recommendation,
		StressLevel:    OfflineStressScore(f),
	}
}

// StressScore is the stress level implied by the averages alone.
func StressScore(avgAttention, avgMeditation float64) int {
	switch {
	case avgAttention > highAttention && avgMeditation < lowMeditation:
		return stressFocused
	case avgAttention < lowAttention && avgMeditation > highMeditation:
		return stressRelaxed
	case avgAttention > balancedHigh && avgMeditation > balancedHigh:
		return stressHappy
	default:
		return stressDefault
	}
}

// OfflineStressScore extends StressScore with the variability check: a
// range wider than highlyVariableRange outranks the balanced-high branch.
func OfflineStressScore(f models.FeatureSummary) int {
	score := StressScore(f.AvgAttention, f.AvgMeditation)
	if score == stressFocused || score == stressRelaxed {
		return score
	}
	if f.AttentionRange.Width() > highlyVariableRange || f.MeditationRange.Width() > highlyVariableRange {
		return stressVariable
	}
	return score
}

func round(x float64) int {
	return int(math.Round(x))
}
