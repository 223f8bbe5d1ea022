// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	apihandler "github.com/orgpilot/orgpilot/internal/api/handler/api"
	"github.com/orgpilot/orgpilot/internal/api/middleware"
	"github.com/orgpilot/orgpilot/internal/collect"
	"github.com/orgpilot/orgpilot/internal/metrics"
	"github.com/orgpilot/orgpilot/internal/storage/profile"
	"go.uber.org/zap"
)

// Server represents the orgpilot HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	JWTSecret   string
	MetricsPath string
}

// Deps holds the services the server exposes.
type Deps struct {
	Collect *collect.Service
	Store   profile.Store
	Cloud   apihandler.CloudProber
	Local   apihandler.LocalProber
	Active  string
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Deps, logger *zap.Logger) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)
	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Deps) {
	chat := apihandler.NewChatHandler(deps.Collect)
	extract := apihandler.NewExtractHandler(deps.Collect)
	data := apihandler.NewDataHandler(deps.Collect)
	prof := apihandler.NewProfileHandler(deps.Store)
	providers := apihandler.NewProvidersHandler(deps.Cloud, deps.Local, deps.Active)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/v1/chat", chat.Turn)
	apiMux.HandleFunc("POST /api/v1/extract", extract.Extract)
	apiMux.HandleFunc("POST /api/v1/data", data.Save)
	apiMux.HandleFunc("GET /api/v1/data/status", data.Status)
	apiMux.HandleFunc("GET /api/v1/organization", prof.Organization)
	apiMux.HandleFunc("GET /api/v1/strategy", prof.Strategy)
	apiMux.HandleFunc("POST /api/v1/strategy", prof.SaveStrategy)
	apiMux.HandleFunc("GET /api/v1/providers/status", providers.Status)

	var apiHandler http.Handler = apiMux
	apiHandler = middleware.JWTAuth(cfg.JWTSecret)(apiHandler)
	if deps.Metrics != nil {
		apiHandler = metrics.HTTPMiddleware(deps.Metrics)(apiHandler)
	}
	apiHandler = metrics.LoggingMiddleware(s.logger)(apiHandler)

	s.mux.Handle("/api/v1/", apiHandler)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
