// Package httpapi exposes the flood risk API plus the operational
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jolbondhu/flood-risk-service/internal/assess"
	"github.com/jolbondhu/flood-risk-service/internal/observability"
)

// RiskService is the assessment pipeline consumed by the handlers.
type RiskService interface {
	Assess(ctx context.Context, lat, lon float64, districtHint string) assess.Result
	AllDistricts(ctx context.Context) []assess.DistrictRisk
	ClearCache() int
	CheckReadiness(ctx context.Context) error
}

// Server exposes the prediction API over HTTP.
type Server struct {
	httpServer *http.Server
	service    RiskService
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the prediction, districts, cache,
// health, readiness, and metrics routes. CORS is open: the API serves
// browser frontends directly.
func NewServer(addr string, service RiskService, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", s.handleHome)
	r.Get("/predicting", s.handlePredictGet)
	r.Post("/predicting", s.handlePredictPost)
	r.Get("/alldistricts", s.handleAllDistricts)
	r.Delete("/cache", s.handleClearCache)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // upstream weather fetch may be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "JolBondhu API is Running",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "jolbondhu_api"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
