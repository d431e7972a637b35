package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/trainlog/internal/workout"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.DraftEntries())
}

func (s *Server) handleAddDraftEntry(w http.ResponseWriter, r *http.Request) {
	id := s.app.AddDraftEntry()
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleRemoveDraftEntry(w http.ResponseWriter, r *http.Request) {
	s.app.RemoveDraftEntry(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// SetExerciseRequest is the body for PUT /draft/entries/{id}/exercise.
type SetExerciseRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSetDraftExercise(w http.ResponseWriter, r *http.Request) {
	var req SetExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.app.SetDraftExercise(chi.URLParam(r, "id"), req.Name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddDraftSet(w http.ResponseWriter, r *http.Request) {
	s.app.AddDraftSet(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveDraftSet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}
	s.app.RemoveDraftSet(chi.URLParam(r, "id"), index)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSetRequest is the body for PUT /draft/entries/{id}/sets/{index}.
// Field is weight, reps or memo; Value is raw form text, validated only at
// commit.
type UpdateSetRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleUpdateDraftSet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}
	var req UpdateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.app.UpdateDraftSetField(chi.URLParam(r, "id"), index, req.Field, req.Value)
	w.WriteHeader(http.StatusNoContent)
}

// CommitRequest is the body for POST /draft/commit.
type CommitRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleCommitDraft(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sess, err := s.app.CommitDraft(r.Context(), req.Date)
	switch {
	case errors.Is(err, workout.ErrMissingDate), errors.Is(err, workout.ErrNoValidEntries):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.Error("commit draft", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusCreated, sess)
	}
}

func (s *Server) handleResetDraft(w http.ResponseWriter, r *http.Request) {
	s.app.ResetDraft()
	w.WriteHeader(http.StatusNoContent)
}
