package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/ingest/alphacsv"
	"github.com/claude/trainlog/internal/storage"
	"github.com/claude/trainlog/internal/workout"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := s.app.ExportSnapshot()
	filename := fmt.Sprintf("trainlog-backup-%s.json", s.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(w, http.StatusOK, snap)
}

// handleImportSnapshot wholesale-replaces the catalog and session store from
// a backup blob. Destructive: the client is expected to have confirmed with
// the user before calling.
func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	imported, err := s.app.ImportSnapshot(r.Context(), blob)
	s.logImport("backup", imported, imported, err, int(time.Since(start).Milliseconds()))

	switch {
	case errors.Is(err, workout.ErrInvalidFormat):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.Error("snapshot import", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]int{"sessions_imported": imported})
	}
}

func (s *Server) handleImportAlphaCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	parsed, err := alphacsv.Parse(r.Body)
	if err != nil {
		s.logImport("alpha_csv", 0, 0, err, int(time.Since(start).Milliseconds()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cat := catalog.FromMap(s.app.CatalogMap())
	sessions := alphacsv.Convert(parsed, cat)

	imported, err := s.app.AppendSessions(r.Context(), sessions)
	s.logImport("alpha_csv", len(parsed), imported, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("alpha csv import", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, alphacsv.Result{
		SessionsReceived: len(parsed),
		SessionsImported: imported,
	})
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// logImport records an import operation's result to the import_logs table.
func (s *Server) logImport(source string, received, imported int, importErr error, durationMs int) {
	status := "success"
	var errMsg *string
	if importErr != nil {
		status = "error"
		msg := importErr.Error()
		errMsg = &msg
	}

	rec := storage.ImportLog{
		Source:           source,
		Status:           status,
		SessionsReceived: received,
		SessionsImported: imported,
		ErrorMessage:     errMsg,
		DurationMs:       durationMs,
	}
	if err := s.db.InsertImportLog(context.Background(), rec); err != nil {
		s.log.Warn("recording import log", "error", err)
	}
}
