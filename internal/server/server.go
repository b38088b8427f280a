// Package server provides the HTTP REST API for resume insights.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/luillyfe/resume-insights/internal/config"
	"github.com/luillyfe/resume-insights/internal/insights"
	"github.com/luillyfe/resume-insights/internal/jobpostings"
	"github.com/luillyfe/resume-insights/internal/types"
)

// resumeService is the per-session extraction surface the handlers need.
// *insights.ResumeInsights satisfies it; tests substitute stubs.
type resumeService interface {
	ExtractCandidateData(ctx context.Context) (*types.Candidate, error)
	MatchJobToSkillsWithPosting(ctx context.Context, skillNames []string, jobPosition, company, postingText string) (*types.JobSkill, error)
	Close() error
}

// serviceFactory builds the extraction service for one uploaded resume.
type serviceFactory func(ctx context.Context, cfg *config.Config, filePath string, logger *zap.Logger) (resumeService, error)

// postingFetcher retrieves job-posting text for match enrichment.
type postingFetcher interface {
	Fetch(ctx context.Context, url string) (*jobpostings.Posting, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	cfg             *config.Config
	logger          *zap.Logger
	sessions        *sessionStore
	fetcher         postingFetcher
	newService      serviceFactory
	extractionSlots *semaphore.Weighted
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:             cfg,
		logger:          logger,
		sessions:        newSessionStore(cfg.SessionTTL),
		fetcher:         jobpostings.NewFetcher(cfg.FetchTimeout, true, logger),
		extractionSlots: semaphore.NewWeighted(int64(cfg.MaxConcurrentExtractions)),
		newService: func(ctx context.Context, cfg *config.Config, filePath string, logger *zap.Logger) (resumeService, error) {
			return insights.NewFromFile(ctx, cfg, filePath, logger)
		},
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/resumes", s.handleUploadResume)
	mux.HandleFunc("GET /api/v1/resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /api/v1/resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("POST /api/v1/resumes/{id}/match", s.handleMatchJob)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // extraction runs inside the request
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	// Stop session eviction and release engine resources
	s.sessions.Stop()

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
