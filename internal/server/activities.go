package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/store"
)

func (s *Service) handleListActivities(w http.ResponseWriter, r *http.Request) {
	var dealID *int64
	if raw := r.URL.Query().Get("deal_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid deal_id")
			return
		}
		dealID = &id
	}

	acts, err := s.store.ListActivities(r.Context(), dealID)
	if err != nil {
		storeError(w, err, "activities")
		return
	}
	writeJSON(w, http.StatusOK, acts)
}

func (s *Service) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var a model.Activity
	if !decodeBody(w, r, &a) {
		return
	}
	if a.Type == nil || strings.TrimSpace(*a.Type) == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	created, err := s.store.CreateActivity(r.Context(), a)
	if err != nil {
		storeError(w, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleTasksThisWeek lists activities due in the current Monday through
// Sunday window.
func (s *Service) handleTasksThisWeek(w http.ResponseWriter, r *http.Request) {
	monday, sunday := store.WeekBounds(time.Now())

	tasks, err := s.store.TasksDueBetween(r.Context(), monday, sunday)
	if err != nil {
		storeError(w, err, "tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
