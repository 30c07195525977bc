package server

import (
	"net/http"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

func (s *Service) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.ListCompanies(r.Context())
	if err != nil {
		storeError(w, err, "companies")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Service) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var c model.Company
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := s.store.CreateCompany(r.Context(), c)
	if err != nil {
		storeError(w, err, "company")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleCompanyContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// A missing company yields an empty list rather than a 404, matching
	// the list-shaped response.
	contacts, err := s.store.ListContactsByCompany(r.Context(), id)
	if err != nil {
		storeError(w, err, "contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Service) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var upd model.CompanyUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	c, err := s.store.UpdateCompany(r.Context(), id, upd)
	if err != nil {
		storeError(w, err, "company")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Service) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteCompany(r.Context(), id); err != nil {
		storeError(w, err, "company")
		return
	}
	writeSuccess(w)
}
