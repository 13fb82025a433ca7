package analytics

import (
	"strings"
	"testing"
	"unicode/utf8"

	"eeg-insight/internal/models"

	"github.com/stretchr/testify/assert"
)

var focusedSummary = models.FeatureSummary{AvgAttention: 80, AvgMeditation: 20}

func TestParseAIResponseStrictLabels(t *testing.T) {
	text := "Mental State: Focused\nAnalysis: Your attention is high.\nRecommendation: Take a break."

	got := ParseAIResponse(text, focusedSummary)

	assert.True(t, got.Success)
	assert.Equal(t, "Focused", got.MentalState)
	assert.Equal(t, "Your attention is high.", got.Analysis)
	assert.Equal(t, "Take a break.", got.Recommendation)
	assert.Equal(t, 75, got.StressLevel)
	assert.Equal(t, models.SourceAI, got.Source)
}

func TestParseAIResponseMarkdownList(t *testing.T) {
	text := "1. **Mental State:** Relaxed\n2. **Analysis:** Calm waves dominate.\n3. **Recommendation:** Keep breathing slowly."

	got := ParseAIResponse(text, focusedSummary)

	assert.Equal(t, "Relaxed", got.MentalState)
	assert.Equal(t, "Calm waves dominate.", got.Analysis)
	assert.Equal(t, "Keep breathing slowly.", got.Recommendation)
}

func TestParseAIResponseHeaderBlocks(t *testing.T) {
	text := "Analysis:\nLine one.\nLine two.\nRecommendation:\nDo some stretching."

	got := ParseAIResponse(text, focusedSummary)

	assert.Equal(t, "Line one. Line two.", got.Analysis)
	assert.Equal(t, "Do some stretching.", got.Recommendation)
}

func TestParseAIResponseInexactStateScansWholeText(t *testing.T) {
	text := "Mental State: Mostly calm with some fatigue\nAnalysis: Meditation is elevated.\nRecommendation: Rest a little."

	got := ParseAIResponse(text, focusedSummary)

	assert.Equal(t, "Relaxed", got.MentalState)
	assert.Equal(t, "Meditation is elevated.", got.Analysis)
}

func TestParseAIResponseWithoutLabels(t *testing.T) {
	text := "You seem quite tired today.\nYour attention dipped several times.\nMeditation stayed low.\nGet some sleep tonight."

	got := ParseAIResponse(text, focusedSummary)

	assert.Equal(t, "Tired", got.MentalState)
	assert.Equal(t, "You seem quite tired today. Your attention dipped several times. Meditation stayed low.", got.Analysis)
	assert.Equal(t, "Get some sleep tonight.", got.Recommendation)
}

func TestParseAIResponseLooseCues(t *testing.T) {
	text := "Overall, patterns: attention is steady.\nMeditation rises slowly.\nBlinks are normal.\nExtra line.\nIn short, try: a brief stretch.\nStay hydrated."

	got := ParseAIResponse(text, models.FeatureSummary{AvgAttention: 50, AvgMeditation: 50})

	assert.Equal(t, "attention is steady. Meditation rises slowly. Blinks are normal.", got.Analysis)
	assert.Equal(t, "a brief stretch. Stay hydrated.", got.Recommendation)
	assert.Equal(t, "Neutral", got.MentalState)
	assert.Equal(t, 50, got.StressLevel)
}

func TestParseAIResponseLooseCuesAfterNonASCII(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"dotted capital I", "İİİ analysis: calm and steady"},
		{"kelvin sign", "KKK analysis: calm and steady"},
		{"upper case cue", "Résumé ANALYSIS: calm and steady"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAIResponse(tt.text, focusedSummary)
			assert.Equal(t, "calm and steady", got.Analysis)
		})
	}
}

func TestParseAIResponseTruncatesLongAnalysis(t *testing.T) {
	text := strings.Repeat("word ", 100)

	got := ParseAIResponse(text, focusedSummary)

	assert.LessOrEqual(t, utf8.RuneCountInString(got.Analysis), maxAnalysisChars)
	assert.True(t, strings.HasSuffix(got.Analysis, "..."))
	assert.NotEmpty(t, got.Recommendation)
}

func TestParseAIResponseEmpty(t *testing.T) {
	got := ParseAIResponse("  \n\n ", focusedSummary)

	assert.Equal(t, "Neutral", got.MentalState)
	assert.Equal(t, defaultAnalysis, got.Analysis)
	assert.Equal(t, defaultRecommendation, got.Recommendation)
}

func TestParseAIResponseIgnoresStressInText(t *testing.T) {
	text := "Mental State: Stressed\nStress level: 99\nAnalysis: Erratic readings."

	got := ParseAIResponse(text, models.FeatureSummary{AvgAttention: 20, AvgMeditation: 80})

	assert.Equal(t, "Stressed", got.MentalState)
	assert.Equal(t, 25, got.StressLevel)
	assert.Equal(t, "Stress level: 99", got.Recommendation)
}

func TestDetectMentalStatePrecedence(t *testing.T) {
	tests := []struct {
		text string
		want models.MentalState
	}{
		{"calm but stressed", models.Stressed},
		{"You look CALM and happy", models.Relaxed},
		{"joyful energy", models.Happy},
		{"feeling a bit down", models.Sad},
		{"deep concentration", models.Focused},
		{"signs of fatigue", models.Tired},
		{"nothing notable", models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMentalState(tt.text))
		})
	}
}
