package server

import (
	"net/http"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

func (s *Service) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context())
	if err != nil {
		storeError(w, err, "contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Service) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var c model.Contact
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := s.store.CreateContact(r.Context(), c)
	if err != nil {
		storeError(w, err, "contact")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := s.store.GetContact(r.Context(), id)
	if err != nil {
		storeError(w, err, "contact")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Service) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var upd model.ContactUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	c, err := s.store.UpdateContact(r.Context(), id, upd)
	if err != nil {
		storeError(w, err, "contact")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Service) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteContact(r.Context(), id); err != nil {
		storeError(w, err, "contact")
		return
	}
	writeSuccess(w)
}
