package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/egandro/global-temperature-heatmap/pkg/fetcher"
	"github.com/egandro/global-temperature-heatmap/pkg/svg"
)

// Options configure the service. Zero values get sensible defaults.
type Options struct {
	Host     string
	Port     int
	Render   svg.Options
	CacheTTL time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// Registry receives the service metrics and backs /metrics.
	Registry *prometheus.Registry
}

// service represents the HTTP service.
type service struct {
	Host     string
	Port     int
	server   *http.Server
	handler  http.Handler
	cache    *heatmapCache
	metrics  *Metrics
	logger   *slog.Logger
	registry *prometheus.Registry
}

// New creates a new service instance serving heat maps built from src.
func New(src fetcher.Source, opts Options) *service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	metrics := NewMetrics(opts.Registry)
	s := &service{
		Host:     opts.Host,
		Port:     opts.Port,
		cache:    newHeatmapCache(src, opts.Render, opts.CacheTTL, opts.Clock, metrics),
		metrics:  metrics,
		logger:   opts.Logger,
		registry: opts.Registry,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /heatmap.svg", s.handleSVG)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	s.handler = s.withRequestID(mux)

	return s
}

// Start runs the HTTP server.
func (s *service) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	s.logger.Info("Starting HTTP service", "address", addr)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *service) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ServeHTTP delegates to the router, useful for testing.
func (s *service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Invalidate forces the next request to fetch the dataset again.
func (s *service) Invalidate() {
	s.cache.invalidate()
	s.logger.Info("Dataset cache invalidated")
}

func (s *service) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request served", "request_id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *service) snapshot(w http.ResponseWriter, r *http.Request) (*snapshot, bool) {
	snap, err := s.cache.get(r.Context())
	if err != nil {
		s.logger.Error("Dataset unavailable", "request_id", w.Header().Get("X-Request-ID"), "error", err)
		s.respond(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset unavailable: " + err.Error()})
		return nil, false
	}
	return snap, true
}

func (s *service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *service) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	page, err := snap.heatmap.GeneratePage()
	if err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.Renders.WithLabelValues("html").Inc()
	s.write(w, "text/html; charset=utf-8", page)
}

func (s *service) handleSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	doc, err := snap.heatmap.Generate()
	if err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.Renders.WithLabelValues("svg").Inc()
	s.write(w, "image/svg+xml", doc)
}

func (s *service) handleLegend(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.metrics.Renders.WithLabelValues("legend").Inc()
	s.respond(w, http.StatusOK, map[string]interface{}{
		"thresholds": snap.heatmap.Threshold().Boundaries(),
		"buckets":    snap.heatmap.Legend(),
	})
}

func (s *service) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	summary, err := snap.data.Summarize(s.cache.opts.BaseTemperature)
	if err != nil {
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.Renders.WithLabelValues("summary").Inc()
	s.respond(w, http.StatusOK, summary)
}

func (s *service) write(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *service) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
