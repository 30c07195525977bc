// Package server provides the CRM HTTP JSON API service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/crmd/internal/store"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr string
}

// Service serves the CRM API from a single shared store.
type Service struct {
	cfg   Config
	store *store.Store
}

// New returns a new API service with the provided config and store.
func New(cfg Config, st *store.Store) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	return &Service{cfg: cfg, store: st}
}

// Handler builds the full API route table. Exposed so tests can drive the
// service through httptest without a listener.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/contacts", s.handleListContacts)
	mux.HandleFunc("POST /api/contacts", s.handleCreateContact)
	mux.HandleFunc("GET /api/contacts/{id}", s.handleGetContact)
	mux.HandleFunc("PUT /api/contacts/{id}", s.handleUpdateContact)
	mux.HandleFunc("DELETE /api/contacts/{id}", s.handleDeleteContact)

	mux.HandleFunc("GET /api/companies", s.handleListCompanies)
	mux.HandleFunc("POST /api/companies", s.handleCreateCompany)
	mux.HandleFunc("GET /api/companies/{id}/contacts", s.handleCompanyContacts)
	mux.HandleFunc("PUT /api/companies/{id}", s.handleUpdateCompany)
	mux.HandleFunc("DELETE /api/companies/{id}", s.handleDeleteCompany)

	mux.HandleFunc("GET /api/deals", s.handleListDeals)
	mux.HandleFunc("POST /api/deals", s.handleCreateDeal)
	mux.HandleFunc("GET /api/deals/{id}", s.handleGetDeal)
	mux.HandleFunc("PUT /api/deals/{id}", s.handleUpdateDeal)
	mux.HandleFunc("DELETE /api/deals/{id}", s.handleDeleteDeal)

	mux.HandleFunc("GET /api/skus", s.handleListSKUs)

	mux.HandleFunc("GET /api/activities", s.handleListActivities)
	mux.HandleFunc("POST /api/activities", s.handleCreateActivity)
	mux.HandleFunc("GET /api/tasks/this-week", s.handleTasksThisWeek)

	mux.HandleFunc("GET /api/revenue", s.handleRevenue)
	mux.HandleFunc("GET /api/pipeline/analytics", s.handlePipelineAnalytics)
	mux.HandleFunc("GET /api/goal/progress", s.handleGoalProgress)

	mux.HandleFunc("GET /api/settings/{key}", s.handleGetSetting)
	mux.HandleFunc("PUT /api/settings/{key}", s.handlePutSetting)

	return mux
}

// Run serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("crm http server: %w", err)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "CRM Backend is running!"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("crmd: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeBody decodes a JSON request body into v, rejecting unparseable input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// pathID parses the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// storeError maps storage failures onto the API error taxonomy: missing rows
// are 404, dangling foreign references are 400, everything else is an
// unrecovered 500.
func storeError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	if errors.Is(err, store.ErrInvalidRef) {
		writeError(w, http.StatusBadRequest, "referenced record not found")
		return
	}
	log.Printf("crmd: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
