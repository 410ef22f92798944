// Package server provides the HTTP server for the formsight analysis service.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/server/api"
	"github.com/ayusman/formsight/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the formsight application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/exercises", s.handleExercises)

	if s.config.App != nil {
		analyzeHandler := api.NewAnalyzeHandler(s.config.App)
		s.mux.Handle("/api/analyze", analyzeHandler)

		liveHandler := NewLiveHandler(s.config.App)
		s.mux.Handle("/api/live", liveHandler)
	}

	if s.config.Store != nil {
		reportsHandler := api.NewReportsHandler(s.config.Store)
		s.mux.Handle("/api/reports", reportsHandler)
		s.mux.Handle("/api/reports/", reportsHandler)
	}

	if s.config.Store != nil && s.config.App != nil {
		recordingsHandler := api.NewRecordingsHandler(s.config.Store, s.config.App)

		// Route analyze requests to the same handler:
		// /api/recordings/{id}/analyze
		recordingRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/analyze") {
				recordingsHandler.Analyze(w, r)
				return
			}
			recordingsHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/recordings", recordingRouter)
		s.mux.Handle("/api/recordings/", recordingRouter)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleExercises handles GET requests to /api/exercises.
func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"exercises": analysis.Exercises(),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
