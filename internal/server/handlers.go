package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"eeg-insight/internal/config"
	"eeg-insight/internal/errors"
	"eeg-insight/internal/logging"
	"eeg-insight/internal/models"
)

const (
	cacheEnabled     = "enabled"
	cacheDisabled    = "disabled"
	cacheUnavailable = "unavailable"
)

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ServiceStatus{
		Status:     "ok",
		Service:    serviceName,
		Version:    serviceVersion,
		Provider:   s.providerName(),
		AIProvider: s.providerLabel(),
		Timestamp:  time.Now().UTC(),
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:       "healthy",
		AIConfigured: s.cfg.AI.IsConfigured(),
		AIEnabled:    s.cfg.AI.Enabled,
		Provider:     s.providerName(),
		Cache:        s.cacheState(r.Context()),
	})
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, errors.Validation("No data provided"))
		return
	}

	result, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) questionHandler(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Question == nil {
		writeError(w, r, errors.Validation("No question provided"))
		return
	}

	answer, err := s.svc.Answer(r.Context(), *req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionResponse{Success: true, Answer: answer})
}

func (s *Server) providerName() string {
	if !s.cfg.AI.IsConfigured() {
		return string(config.ProviderNone)
	}
	return string(s.cfg.AI.Provider)
}

func (s *Server) providerLabel() string {
	if !s.cfg.AI.IsConfigured() {
		return config.AIConfig{}.ProviderLabel()
	}
	return s.cfg.AI.ProviderLabel()
}

func (s *Server) cacheState(ctx context.Context) string {
	if s.cache == nil {
		return cacheDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := s.cache.Ping(ctx); err != nil {
		logging.FromContext(ctx).Warnf("completion cache ping failed: %v", err)
		return cacheUnavailable
	}
	return cacheEnabled
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps err to a status. Only validation messages reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	logging.FromContext(r.Context()).Errorf("request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
}
