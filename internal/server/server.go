// Package server exposes the orchestrator over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eeg-insight/internal/config"
	"eeg-insight/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	serviceName    = "EEG AI Analysis Server"
	serviceVersion = "1.0"
	maxBodyBytes   = 1 << 20
)

// Orchestrator answers analysis and question requests.
type Orchestrator interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (models.AnalysisResult, error)
	Answer(ctx context.Context, question string) (string, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router *mux.Router
	cfg    *config.Config
	svc    Orchestrator
	cache  Pinger
}

type Option func(*Server)

// WithCache reports the completion cache in /health.
func WithCache(p Pinger) Option {
	return func(s *Server) {
		s.cache = p
	}
}

func New(cfg *config.Config, svc Orchestrator, opts ...Option) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		svc:    svc,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestIDMiddleware, corsMiddleware(s.cfg.CORSAllowedOrigins), instrumentMiddleware)

	s.router.HandleFunc("/", s.statusHandler).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/analyze", s.analyzeHandler).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/api/question", s.questionHandler).Methods(http.MethodPost, http.MethodOptions)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until SIGINT or SIGTERM, then drains in-flight
// requests for up to 30 seconds.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// provider calls may take the whole AI timeout
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  30 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("could not gracefully shutdown the server: %v", err)
		}
		close(done)
	}()

	log.Infof("server is ready to handle requests at %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	<-done
	log.Info("server stopped")
	return nil
}
