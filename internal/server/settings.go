package server

import (
	"net/http"
	"strings"
)

func (s *Service) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	setting, err := s.store.GetSetting(r.Context(), key)
	if err != nil {
		storeError(w, err, "setting")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (s *Service) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var body struct {
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Value) == "" {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	if err := s.store.PutSetting(r.Context(), key, body.Value); err != nil {
		storeError(w, err, "setting")
		return
	}

	setting, err := s.store.GetSetting(r.Context(), key)
	if err != nil {
		storeError(w, err, "setting")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
