package server

import "net/http"

func (s *Service) handleRevenue(w http.ResponseWriter, r *http.Request) {
	rev, err := s.store.Revenue(r.Context())
	if err != nil {
		storeError(w, err, "revenue")
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Service) handlePipelineAnalytics(w http.ResponseWriter, r *http.Request) {
	pa, err := s.store.PipelineAnalytics(r.Context())
	if err != nil {
		storeError(w, err, "pipeline analytics")
		return
	}
	writeJSON(w, http.StatusOK, pa)
}

func (s *Service) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	gp, err := s.store.GoalProgress(r.Context())
	if err != nil {
		storeError(w, err, "goal progress")
		return
	}
	writeJSON(w, http.StatusOK, gp)
}
