package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "crm.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(New(Config{}, st).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// do issues a request with a JSON body and decodes the JSON response into out.
func do(t *testing.T, method, url string, body, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, url, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	resp := do(t, http.MethodGet, srv.URL+"/api/health", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "CRM Backend is running!" {
		t.Errorf("status message = %q", body["status"])
	}
}

func TestContactLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var created model.Contact
	resp := do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "Ann"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if created.ID == 0 || created.Name != "Ann" {
		t.Fatalf("created = %+v", created)
	}
	if created.Email != nil || created.Phone != nil || created.Company != nil {
		t.Errorf("optional fields not null: %+v", created)
	}

	url := fmt.Sprintf("%s/api/contacts/%d", srv.URL, created.ID)

	var fetched model.Contact
	resp = do(t, http.MethodGet, url, nil, &fetched)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	if fetched.ID != created.ID || fetched.Name != "Ann" {
		t.Errorf("fetched = %+v", fetched)
	}

	var updated model.Contact
	resp = do(t, http.MethodPut, url, map[string]string{"email": "ann@example.com"}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	if updated.Name != "Ann" {
		t.Errorf("partial update clobbered name: %+v", updated)
	}
	if updated.Email == nil || *updated.Email != "ann@example.com" {
		t.Errorf("email = %v", updated.Email)
	}

	var deleted map[string]bool
	resp = do(t, http.MethodDelete, url, nil, &deleted)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	if !deleted["success"] {
		t.Errorf("delete body = %v", deleted)
	}

	resp = do(t, http.MethodGet, url, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
	resp = do(t, http.MethodDelete, url, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestContactValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "  "}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/contacts", bytes.NewBufferString("{not json"))
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("raw request: %v", err)
	}
	raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", raw.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/contacts/abc", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", resp.StatusCode)
	}
}

func TestDealValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/deals", map[string]any{"contact_id": 1}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, srv.URL+"/api/deals", map[string]any{"title": "No owner"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing contact_id status = %d, want 400", resp.StatusCode)
	}
}

func TestDealSKULinks(t *testing.T) {
	srv := newTestServer(t)

	var contact model.Contact
	do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "Buyer"}, &contact)

	var deal model.Deal
	resp := do(t, http.MethodPost, srv.URL+"/api/deals", map[string]any{
		"contact_id": contact.ID,
		"title":      "Bulk order",
		"value":      5000,
		"sku_ids":    []int64{1, 2},
	}, &deal)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if deal.Status != model.StatusOpen {
		t.Errorf("status = %q, want open", deal.Status)
	}
	if len(deal.SKUs) != 2 {
		t.Fatalf("skus = %d, want 2", len(deal.SKUs))
	}

	url := fmt.Sprintf("%s/api/deals/%d", srv.URL, deal.ID)
	var updated model.Deal
	do(t, http.MethodPut, url, map[string]any{"sku_ids": []int64{3}}, &updated)
	if len(updated.SKUs) != 1 || updated.SKUs[0].ID != 3 {
		t.Errorf("resynced skus = %+v", updated.SKUs)
	}
	if updated.Title != "Bulk order" {
		t.Errorf("sku resync clobbered title: %q", updated.Title)
	}
}

func TestRevenuePartition(t *testing.T) {
	srv := newTestServer(t)

	var contact model.Contact
	do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "Buyer"}, &contact)

	deals := []map[string]any{
		{"contact_id": contact.ID, "title": "a", "value": 100, "status": "open"},
		{"contact_id": contact.ID, "title": "b", "value": 50, "status": "closed"},
		{"contact_id": contact.ID, "title": "c", "value": 30, "status": "open"},
		{"contact_id": contact.ID, "title": "d", "value": 999, "status": "stalled"},
	}
	for _, d := range deals {
		resp := do(t, http.MethodPost, srv.URL+"/api/deals", d, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seeding deal %v: status %d", d, resp.StatusCode)
		}
	}

	var rev model.Revenue
	resp := do(t, http.MethodGet, srv.URL+"/api/revenue", nil, &rev)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revenue status = %d, want 200", resp.StatusCode)
	}
	if rev.Forecast != 130 {
		t.Errorf("forecast = %v, want 130", rev.Forecast)
	}
	if rev.Realized != 50 {
		t.Errorf("realized = %v, want 50", rev.Realized)
	}
}

func TestSKUCatalogGrouping(t *testing.T) {
	srv := newTestServer(t)

	var grouped map[string]map[string][]model.SKU
	resp := do(t, http.MethodGet, srv.URL+"/api/skus", nil, &grouped)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(grouped) == 0 {
		t.Fatal("catalog is empty")
	}
	for cat, subs := range grouped {
		for sub, skus := range subs {
			for _, sku := range skus {
				if sku.Category != cat || sku.Subcategory != sub {
					t.Errorf("sku %q grouped under %s/%s but tagged %s/%s",
						sku.Name, cat, sub, sku.Category, sku.Subcategory)
				}
			}
		}
	}
}

func TestSettingsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var seeded model.Setting
	resp := do(t, http.MethodGet, srv.URL+"/api/settings/annual_goal", nil, &seeded)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seeded goal status = %d, want 200", resp.StatusCode)
	}
	if seeded.Value != store.DefaultAnnualGoal {
		t.Errorf("seeded value = %q, want %q", seeded.Value, store.DefaultAnnualGoal)
	}

	var updated model.Setting
	resp = do(t, http.MethodPut, srv.URL+"/api/settings/annual_goal",
		map[string]string{"value": "250000"}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want 200", resp.StatusCode)
	}
	if updated.Value != "250000" {
		t.Errorf("updated value = %q", updated.Value)
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/settings/no_such_key", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown key status = %d, want 404", resp.StatusCode)
	}

	resp = do(t, http.MethodPut, srv.URL+"/api/settings/annual_goal",
		map[string]string{"value": ""}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty value status = %d, want 400", resp.StatusCode)
	}
}

func TestActivitiesFilter(t *testing.T) {
	srv := newTestServer(t)

	var contact model.Contact
	do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "Buyer"}, &contact)

	var deal model.Deal
	do(t, http.MethodPost, srv.URL+"/api/deals",
		map[string]any{"contact_id": contact.ID, "title": "Order"}, &deal)

	resp := do(t, http.MethodPost, srv.URL+"/api/activities",
		map[string]any{"type": "call", "deal_id": deal.ID, "description": "intro call"}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create activity status = %d, want 201", resp.StatusCode)
	}
	resp = do(t, http.MethodPost, srv.URL+"/api/activities",
		map[string]any{"type": "email", "contact_id": contact.ID}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create activity status = %d, want 201", resp.StatusCode)
	}

	var all []model.Activity
	do(t, http.MethodGet, srv.URL+"/api/activities", nil, &all)
	if len(all) != 2 {
		t.Fatalf("all activities = %d, want 2", len(all))
	}

	var filtered []model.Activity
	do(t, http.MethodGet, fmt.Sprintf("%s/api/activities?deal_id=%d", srv.URL, deal.ID), nil, &filtered)
	if len(filtered) != 1 {
		t.Fatalf("filtered activities = %d, want 1", len(filtered))
	}
	if filtered[0].Type == nil || *filtered[0].Type != "call" {
		t.Errorf("filtered type = %v", filtered[0].Type)
	}

	resp = do(t, http.MethodPost, srv.URL+"/api/activities", map[string]any{"description": "no type"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing type status = %d, want 400", resp.StatusCode)
	}
}

func TestDanglingReferences(t *testing.T) {
	srv := newTestServer(t)

	var errBody map[string]string
	resp := do(t, http.MethodPost, srv.URL+"/api/deals",
		map[string]any{"title": "Orphan", "contact_id": 999}, &errBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("deal with unknown contact status = %d, want 400", resp.StatusCode)
	}
	if errBody["error"] != "referenced record not found" {
		t.Errorf("error = %q", errBody["error"])
	}

	var contact model.Contact
	resp = do(t, http.MethodPost, srv.URL+"/api/contacts", map[string]string{"name": "Ann"}, &contact)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create contact status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, srv.URL+"/api/deals",
		map[string]any{"title": "Bad SKU", "contact_id": contact.ID, "sku_ids": []int64{9999}}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("deal with unknown sku status = %d, want 400", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, srv.URL+"/api/contacts",
		map[string]any{"name": "Bea", "company_id": 9999}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("contact with unknown company status = %d, want 400", resp.StatusCode)
	}

	var deals []model.Deal
	resp = do(t, http.MethodGet, srv.URL+"/api/deals", nil, &deals)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list deals status = %d", resp.StatusCode)
	}
	if len(deals) != 0 {
		t.Errorf("rejected deals persisted: %+v", deals)
	}
}

func TestUpdateKeepsExplicitNullFields(t *testing.T) {
	srv := newTestServer(t)

	var created model.Contact
	resp := do(t, http.MethodPost, srv.URL+"/api/contacts",
		map[string]string{"name": "Ann", "email": "ann@example.com"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	url := fmt.Sprintf("%s/api/contacts/%d", srv.URL, created.ID)

	var updated model.Contact
	resp = do(t, http.MethodPut, url,
		json.RawMessage(`{"email": null, "phone": "555-0100"}`), &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	if updated.Email == nil || *updated.Email != "ann@example.com" {
		t.Errorf("explicit null cleared email: %v", updated.Email)
	}
	if updated.Phone == nil || *updated.Phone != "555-0100" {
		t.Errorf("phone = %v", updated.Phone)
	}
}
