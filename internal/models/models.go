package models

import "time"

// MetricSeries is one EEG reading (0-100) per sampling tick.
type MetricSeries []int

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	AttentionHistory  MetricSeries `json:"attentionHistory"`
	MeditationHistory MetricSeries `json:"meditationHistory"`
	BlinkHistory      MetricSeries `json:"blinkHistory"`
}

// QuestionRequest is the body of POST /api/question. Question is nil when
// the key is absent or null.
type QuestionRequest struct {
	Question *string `json:"question"`
}

// QuestionResponse is returned by POST /api/question.
type QuestionResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}

// Span is the observed minimum and maximum of a series.
type Span struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Width returns max-min.
func (s Span) Width() int {
	return s.Max - s.Min
}

// FeatureSummary holds the features derived once per analysis request.
type FeatureSummary struct {
	AvgAttention     float64 `json:"avg_attention"`
	AvgMeditation    float64 `json:"avg_meditation"`
	AvgBlink         float64 `json:"avg_blink"`
	AttentionRange   Span    `json:"attention_range"`
	MeditationRange  Span    `json:"meditation_range"`
	AttentionStdDev  float64 `json:"attention_stddev"`
	MeditationStdDev float64 `json:"meditation_stddev"`
	BlinkStdDev      float64 `json:"blink_stddev"`
	SampleCount      int     `json:"sample_count"`
}

// AnalysisSource tells which path produced an AnalysisResult.
type AnalysisSource string

const (
	SourceAI      AnalysisSource = "ai"
	SourceOffline AnalysisSource = "offline"
)

// AnalysisResult is returned by POST /api/analyze.
type AnalysisResult struct {
	Success        bool           `json:"success"`
	MentalState    string         `json:"mentalState"`
	Analysis       string         `json:"analysis"`
	Recommendation string         `json:"recommendation"`
	StressLevel    int            `json:"stressLevel"`
	Source         AnalysisSource `json:"-"`
}

// ServiceStatus is returned by GET /.
type ServiceStatus struct {
	Status     string    `json:"status"`
	Service    string    `json:"service"`
	Version    string    `json:"version"`
	Provider   string    `json:"provider"`
	AIProvider string    `json:"ai_provider"`
	Timestamp  time.Time `json:"timestamp"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status       string `json:"status"`
	AIConfigured bool   `json:"aiConfigured"`
	AIEnabled    bool   `json:"aiEnabled"`
	Provider     string `json:"provider"`
	Cache        string `json:"cache"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
