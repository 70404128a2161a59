package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/routescan/internal/extract"
	"github.com/routescan/internal/ocr"
	"github.com/routescan/internal/report"
	"github.com/routescan/internal/web/handlers"
	"github.com/routescan/internal/web/middleware"
)

// Version is reported by /api/health.
var Version = "dev"

// Dependencies are the collaborators the server routes to. Engine and
// Store may be nil to disable OCR uploads and run history.
type Dependencies struct {
	Extractor  *extract.Extractor
	Engine     ocr.Engine
	OCROptions []ocr.InputOption
	Store      handlers.RunStore
	// Closer is closed on shutdown, typically the history database.
	Closer io.Closer
}

// Server represents the web server
type Server struct {
	config     *Config
	deps       Dependencies
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance
func NewServer(config *Config, deps Dependencies) (*Server, error) {
	if deps.Extractor == nil {
		deps.Extractor = extract.New()
	}

	server := &Server{
		config: config,
		deps:   deps,
	}

	// Setup routes
	server.setupRoutes()

	// OCR of a large photo can take a while; the write timeout covers it.
	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	// Convert config for handlers (to avoid import cycle)
	handlerConfig := &handlers.Config{}
	handlerConfig.Features.ComponentsEnabled = s.config.Features.ComponentsEnabled
	handlerConfig.Features.HistoryEnabled = s.deps.Store != nil
	handlerConfig.MaxUploadBytes = s.config.Limits.MaxUploadBytes

	components := report.FromCandidate
	if s.config.Features.LibpostalEnabled {
		components = report.Libpostal
	}

	apiHandler := &handlers.APIHandler{Version: Version}
	extractHandler := &handlers.ExtractHandler{
		Extractor:  s.deps.Extractor,
		Engine:     s.deps.Engine,
		OCROptions: s.deps.OCROptions,
		Components: components,
		Store:      s.deps.Store,
		Config:     handlerConfig,
	}

	// API routes
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", apiHandler.Health).Methods("GET")
	api.HandleFunc("/extract", extractHandler.Extract).Methods("POST", "OPTIONS")
	api.HandleFunc("/ocr", extractHandler.OCR).Methods("POST", "OPTIONS")

	// History endpoints (if a store is configured)
	if s.deps.Store != nil {
		runsHandler := &handlers.RunsHandler{Store: s.deps.Store}
		api.HandleFunc("/runs", runsHandler.ListRuns).Methods("GET")
		api.HandleFunc("/runs/{id}", runsHandler.GetRun).Methods("GET")
	}

	// Static file serving
	staticDir := "internal/web/static"
	if _, err := os.Stat(staticDir); err == nil {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir + "/")))
	}

	// Apply middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())

	if s.config.Auth.Enabled {
		// Apply authentication middleware to API routes only
		api.Use(middleware.Authentication(s.config.Auth.APIKey))
	}
}

// Start starts the web server and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Setup graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case <-stop:
	case err := <-errc:
		s.closeDeps()
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}
	s.closeDeps()

	fmt.Println("Server stopped")
	return nil
}

func (s *Server) closeDeps() {
	if s.deps.Closer == nil {
		return
	}
	if err := s.deps.Closer.Close(); err != nil {
		fmt.Printf("Database close error: %v\n", err)
	}
}
