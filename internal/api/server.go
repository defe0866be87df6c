package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/kiegate/internal/dispatch"
	"github.com/mattjoyce/kiegate/internal/model"
)

// CaseService answers the case query endpoints.
type CaseService interface {
	GetCaseInstances(ctx context.Context, owner string, statuses []int, page, pageSize int) (*model.CaseInstanceList, error)
	GetCaseDefinitions(ctx context.Context, filter string, page, pageSize int) (*model.CaseDefinitionList, error)
	GetCaseInstance(ctx context.Context, containerID, caseID string) (*model.CaseInstance, error)
}

// ReadModel serves containers, jobs and process instances.
type ReadModel interface {
	Container(ctx context.Context, id string) (*model.Container, error)
	ListContainers(ctx context.Context) ([]model.Container, error)
	JobRequest(ctx context.Context, id int64) (*model.JobRequest, error)
	ProcessInstance(ctx context.Context, containerID string, id int64) (*model.ProcessInstance, error)
	ProcessInstances(ctx context.Context, page, pageSize int) ([]model.ProcessInstance, error)
}

// Config holds API server configuration
type Config struct {
	Listen string
	// APIKey enables bearer authentication when set.
	APIKey          string
	ShutdownTimeout time.Duration
}

// Server represents the HTTP API server
type Server struct {
	config     Config
	cases      CaseService
	reads      ReadModel
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	server     *http.Server
	startedAt  time.Time
}

// New creates a new API server instance
func New(config Config, cases CaseService, reads ReadModel, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Server {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:     config,
		cases:      cases,
		reads:      reads,
		dispatcher: dispatcher,
		logger:     logger.With(slog.String("component", "api")),
		startedAt:  time.Now(),
	}
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start starts the HTTP server (blocking)
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.config.Listen,
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("API server starting", "listen", s.config.Listen, "auth", s.config.APIKey != "")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// route describes one protected endpoint. The table drives both the router
// and the OpenAPI document.
type route struct {
	method  string
	pattern string
	summary string
	query   []string
	handler func(*Server) http.HandlerFunc
}

var routes = []route{
	{http.MethodGet, "/server/containers", "List deployed containers", nil,
		func(s *Server) http.HandlerFunc { return s.handleListContainers }},
	{http.MethodGet, "/server/jobs/{jobId}", "Get a job request", nil,
		func(s *Server) http.HandlerFunc { return s.handleGetJobRequest }},
	{http.MethodGet, "/server/queries/cases", "Find case definitions", []string{"filter", "page", "pageSize"},
		func(s *Server) http.HandlerFunc { return s.handleGetCaseDefinitions }},
	{http.MethodGet, "/server/queries/cases/instances", "Find case instances", []string{"owner", "status", "page", "pageSize"},
		func(s *Server) http.HandlerFunc { return s.handleGetCaseInstances }},
	{http.MethodGet, "/server/containers/{containerId}/cases/instances/{caseId}", "Get a case instance", nil,
		func(s *Server) http.HandlerFunc { return s.handleGetCaseInstance }},
	{http.MethodGet, "/server/queries/processes/instances", "Find process instances", []string{"page", "pageSize"},
		func(s *Server) http.HandlerFunc { return s.handleFindProcessInstances }},
	{http.MethodGet, "/server/containers/{containerId}/processes/instances/{processInstanceId}", "Get a process instance", nil,
		func(s *Server) http.HandlerFunc { return s.handleGetProcessInstance }},
}

// setupRoutes configures the HTTP router
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Unauthenticated ops endpoints.
	r.Get("/healthz", s.handleHealthz)
	r.Get("/openapi.json", s.handleOpenAPI)

	r.Group(func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(s.authMiddleware)
		}
		for _, rt := range routes {
			r.Method(rt.method, rt.pattern, rt.handler(s))
		}
	})

	return r
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
