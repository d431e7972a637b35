package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/models"
	"github.com/claude/trainlog/internal/stats"
	"github.com/claude/trainlog/internal/workout"
	"github.com/go-chi/chi/v5"
)

// StatsResponse is the dashboard's headline numbers.
type StatsResponse struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalSets         int     `json:"total_sets"`
	TotalVolume       float64 `json:"total_volume"`
	SessionsThisMonth int     `json:"sessions_this_month"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions := s.app.Sessions()
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalSessions:     stats.TotalSessions(sessions),
		TotalSets:         stats.TotalSets(sessions),
		TotalVolume:       stats.TotalVolume(sessions),
		SessionsThisMonth: stats.SessionsInMonth(sessions, s.now()),
	})
}

// WeeklyVolumeResponse holds the trailing-window body part breakdown with
// bar heights as percentages of the largest part.
type WeeklyVolumeResponse struct {
	Days    int                         `json:"days"`
	Volumes map[models.BodyPart]float64 `json:"volumes"`
	Heights map[models.BodyPart]float64 `json:"heights"`
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	volumes := stats.BodyPartVolume(s.app.Sessions(), days, s.now())
	writeJSON(w, http.StatusOK, WeeklyVolumeResponse{
		Days:    days,
		Volumes: volumes,
		Heights: stats.BarHeights(volumes),
	})
}

// VolumeDistributionResponse holds the all-time per-part volume. HasData is
// false when every part is zero so the caller can skip the chart entirely.
type VolumeDistributionResponse struct {
	Volumes map[models.BodyPart]float64 `json:"volumes"`
	HasData bool                        `json:"has_data"`
}

func (s *Server) handleVolumeDistribution(w http.ResponseWriter, r *http.Request) {
	volumes, hasData := stats.AllTimeBodyPartVolume(s.app.Sessions())
	writeJSON(w, http.StatusOK, VolumeDistributionResponse{Volumes: volumes, HasData: hasData})
}

// TimeSeriesResponse holds one exercise's progression points.
type TimeSeriesResponse struct {
	Exercise string        `json:"exercise"`
	Metric   stats.Metric  `json:"metric"`
	Points   []stats.Point `json:"points"`
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	metric := stats.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = stats.MetricMaxWeight
	}
	if !stats.ValidMetric(metric) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric must be max-weight, total-volume or max-reps"})
		return
	}

	points := stats.ExerciseTimeSeries(s.app.Sessions(), exercise, metric)
	writeJSON(w, http.StatusOK, TimeSeriesResponse{Exercise: exercise, Metric: metric, Points: points})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, stats.RecentSessions(s.app.Sessions(), limit))
}

func (s *Server) handleUsedExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.UsedExerciseNames(s.app.Sessions()))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.CatalogGroups())
}

// AddExerciseRequest is the body for POST /api/v1/catalog.
type AddExerciseRequest struct {
	Name     string          `json:"name"`
	BodyPart models.BodyPart `json:"bodyPart"`
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	err := s.app.AddExercise(r.Context(), req.Name, req.BodyPart)
	switch {
	case errors.Is(err, catalog.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrEmptyName), errors.Is(err, catalog.ErrInvalidBodyPart):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.Error("add exercise", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusCreated, req)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.app.DeleteSession(r.Context(), id)
	switch {
	case errors.Is(err, workout.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.Error("delete session", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
