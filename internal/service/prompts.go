package service

import (
	"fmt"
	"math"

	"eeg-insight/internal/models"
)

const analysisPromptTemplate = `Analyze this EEG brainwave data collected over the last minute and provide insights:

Average Attention: %d%%
Average Meditation: %d%%
Average Blink Rate: %d%%

Attention Range: %d-%d%%
Meditation Range: %d-%d%%

Number of data points: %d

Please provide:
1. Current mental state (choose ONE: Stressed, Relaxed, Happy, Sad, Focused, Tired, or Neutral)
2. Brief analysis (2-3 sentences explaining the brainwave patterns)
3. One actionable recommendation for the user

Keep the response concise, supportive, and helpful.`

const questionPromptTemplate = `You are a helpful assistant for an EEG brain-computer interface app.
User question: %s

Provide a brief, friendly answer (2-3 sentences max).`

func analysisPrompt(f models.FeatureSummary) string {
	return fmt.Sprintf(analysisPromptTemplate,
		roundPct(f.AvgAttention),
		roundPct(f.AvgMeditation),
		roundPct(f.AvgBlink),
		f.AttentionRange.Min, f.AttentionRange.Max,
		f.MeditationRange.Min, f.MeditationRange.Max,
		f.SampleCount,
	)
}

func questionPrompt(question string) string {
	return fmt.Sprintf(questionPromptTemplate, question)
}

func roundPct(x float64) int {
	return int(math.Round(x))
}
