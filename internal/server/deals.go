package server

import (
	"net/http"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

// dealRequest is the create payload: deal fields plus the SKU links to
// attach.
type dealRequest struct {
	model.Deal
	SKUIDs []int64 `json:"sku_ids"`
}

func (s *Service) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.store.ListDeals(r.Context())
	if err != nil {
		storeError(w, err, "deals")
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (s *Service) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.ContactID == nil {
		writeError(w, http.StatusBadRequest, "contact_id is required")
		return
	}

	created, err := s.store.CreateDeal(r.Context(), req.Deal, req.SKUIDs)
	if err != nil {
		storeError(w, err, "deal")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := s.store.GetDeal(r.Context(), id)
	if err != nil {
		storeError(w, err, "deal")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var upd model.DealUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		writeError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	d, err := s.store.UpdateDeal(r.Context(), id, upd)
	if err != nil {
		storeError(w, err, "deal")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteDeal(r.Context(), id); err != nil {
		storeError(w, err, "deal")
		return
	}
	writeSuccess(w)
}

// handleListSKUs serves the catalog grouped by category and subcategory.
func (s *Service) handleListSKUs(w http.ResponseWriter, r *http.Request) {
	skus, err := s.store.ListSKUs(r.Context())
	if err != nil {
		storeError(w, err, "skus")
		return
	}

	grouped := map[string]map[string][]model.SKU{}
	for _, sku := range skus {
		cat := grouped[sku.Category]
		if cat == nil {
			cat = map[string][]model.SKU{}
			grouped[sku.Category] = cat
		}
		cat[sku.Subcategory] = append(cat[sku.Subcategory], sku)
	}
	writeJSON(w, http.StatusOK, grouped)
}
