// Package server exposes the workout application over a JSON HTTP API. The
// rendering layer (and the backup CLI) pull from these endpoints on demand;
// nothing is pushed.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/trainlog/internal/storage"
	"github.com/claude/trainlog/internal/workout"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app    *workout.App
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
	now    func() time.Time
}

// New creates a Server with all routes configured.
func New(app *workout.App, db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		app:    app,
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (dashboard, history, charts)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/volume/weekly", s.handleWeeklyVolume)
	s.router.Get("/api/v1/volume/distribution", s.handleVolumeDistribution)
	s.router.Get("/api/v1/timeseries", s.handleTimeSeries)
	s.router.Get("/api/v1/sessions", s.handleSessions)
	s.router.Get("/api/v1/exercises/used", s.handleUsedExercises)
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/draft", s.handleGetDraft)
	s.router.Get("/api/v1/export", s.handleExport)
	s.router.Get("/api/v1/import/logs", s.handleImportLogs)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Post("/api/v1/catalog", s.handleAddExercise)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)

		r.Post("/api/v1/draft/entries", s.handleAddDraftEntry)
		r.Delete("/api/v1/draft/entries/{id}", s.handleRemoveDraftEntry)
		r.Put("/api/v1/draft/entries/{id}/exercise", s.handleSetDraftExercise)
		r.Post("/api/v1/draft/entries/{id}/sets", s.handleAddDraftSet)
		r.Delete("/api/v1/draft/entries/{id}/sets/{index}", s.handleRemoveDraftSet)
		r.Put("/api/v1/draft/entries/{id}/sets/{index}", s.handleUpdateDraftSet)
		r.Post("/api/v1/draft/commit", s.handleCommitDraft)
		r.Post("/api/v1/draft/reset", s.handleResetDraft)

		r.Post("/api/v1/import", s.handleImportSnapshot)
		r.Post("/api/v1/import/alpha", s.handleImportAlphaCSV)
	})
}

// MountMCP attaches the MCP streamable HTTP handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
