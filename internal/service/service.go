// Package service decides, per request, whether to ask the configured AI
// provider or answer offline, and degrades to the offline path whenever the
// provider is missing or fails.
package service

import (
	"context"
	"strings"
	"time"

	"eeg-insight/internal/analytics"
	"eeg-insight/internal/cache"
	"eeg-insight/internal/errors"
	"eeg-insight/internal/logging"
	"eeg-insight/internal/metrics"
	"eeg-insight/internal/models"
	"eeg-insight/internal/provider"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	provider provider.Provider
	model    string
	cache    cache.Cache
}

type Option func(*Service)

// WithCache enables the completion cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithModel sets the model name used in completion cache keys.
func WithModel(model string) Option {
	return func(s *Service) {
		s.model = model
	}
}

// New returns a Service that calls p. A nil p means every request is
// answered offline.
func New(p provider.Provider, opts ...Option) *Service {
	s := &Service{provider: p}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AIEnabled reports whether requests will try the provider first.
func (s *Service) AIEnabled() bool {
	return s.provider != nil
}

// Analyze validates req and returns an analysis. Provider failures never
// surface: the rule-based classifier answers instead. Only validation
// errors are returned to the caller.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (models.AnalysisResult, error) {
	if err := analytics.Validate(req); err != nil {
		return models.AnalysisResult{}, err
	}

	f, err := analytics.Summarize(req)
	if err != nil {
		return models.AnalysisResult{}, errors.Wrap(errors.ErrInternal, err)
	}

	result, err := s.analyzeWithAI(ctx, f)
	if err != nil {
		s.fallback(ctx, metrics.FlowAnalyze, err)
		result = analytics.Classify(f).Result()
	}

	state := strings.TrimSuffix(result.MentalState, models.OfflineSuffix)
	metrics.AnalysesTotal.WithLabelValues(state, string(result.Source)).Inc()
	metrics.StressLevel.Observe(float64(result.StressLevel))

	logging.FromContext(ctx).WithFields(log.Fields{
		"state":   state,
		"source":  result.Source,
		"stress":  result.StressLevel,
		"samples": f.SampleCount,
	}).Info("analysis completed")

	return result, nil
}

func (s *Service) analyzeWithAI(ctx context.Context, f models.FeatureSummary) (models.AnalysisResult, error) {
	text, err := s.complete(ctx, metrics.FlowAnalyze, analysisPrompt(f))
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return analytics.ParseAIResponse(text, f), nil
}

// Answer replies to a free-form question, from the provider when one is
// configured and from the built-in FAQ otherwise.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.Validation("Question cannot be empty")
	}

	answer, err := s.complete(ctx, metrics.FlowQuestion, questionPrompt(question))
	if err != nil {
		s.fallback(ctx, metrics.FlowQuestion, err)
		return analytics.AnswerOffline(question), nil
	}
	return answer, nil
}

// complete runs prompt through the cache and then the provider.
func (s *Service) complete(ctx context.Context, flow, prompt string) (string, error) {
	if s.provider == nil {
		return "", errors.New(errors.ErrAINotConfigured)
	}

	name := s.provider.Name()
	entry := logging.FromContext(ctx).WithFields(log.Fields{"provider": name, "flow": flow})

	var key string
	if s.cache != nil {
		key = cache.Key(name, s.model, prompt)
		cached, ok, err := s.cache.GetCompletion(ctx, key)
		switch {
		case err != nil:
			metrics.CompletionCacheTotal.WithLabelValues("error").Inc()
			entry.Warnf("completion cache lookup failed: %v", err)
		case ok:
			metrics.CompletionCacheTotal.WithLabelValues("hit").Inc()
			entry.Debug("completion served from cache")
			return cached, nil
		default:
			metrics.CompletionCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	text, err := s.provider.Complete(ctx, prompt)
	metrics.AIRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(name, flow, "error").Inc()
		return "", err
	}
	metrics.AIRequestsTotal.WithLabelValues(name, flow, "success").Inc()

	if s.cache != nil {
		if err := s.cache.StoreCompletion(ctx, key, text); err != nil {
			entry.Warnf("completion cache store failed: %v", err)
		}
	}

	return text, nil
}

func (s *Service) fallback(ctx context.Context, flow string, err error) {
	entry := logging.FromContext(ctx).WithField("flow", flow)
	if errors.Is(err, errors.New(errors.ErrAINotConfigured)) {
		metrics.FallbacksTotal.WithLabelValues(flow, metrics.ReasonNotConfigured).Inc()
		entry.Debug("AI not configured, answering offline")
		return
	}

	metrics.FallbacksTotal.WithLabelValues(flow, metrics.ReasonProviderError).Inc()
	entry.Warnf("AI provider failed, answering offline: %v", err)
}
