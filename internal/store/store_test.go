package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/crmd/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "crm.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strp(s string) *string { return &s }

func intp(n int64) *int64 { return &n }

func floatp(f float64) *float64 { return &f }

func seedContact(t *testing.T, s *Store, name string) *model.Contact {
	t.Helper()
	c, err := s.CreateContact(context.Background(), model.Contact{Name: name})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	return c
}

func seedDeal(t *testing.T, s *Store, contactID *int64, title string, value float64, status string) *model.Deal {
	t.Helper()
	d, err := s.CreateDeal(context.Background(), model.Deal{
		ContactID: contactID,
		Title:     title,
		Value:     floatp(value),
		Status:    status,
	}, nil)
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	return d
}

func TestOpenSeedsCatalogAndGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	skus, err := s.ListSKUs(ctx)
	if err != nil {
		t.Fatalf("ListSKUs failed: %v", err)
	}
	if len(skus) != len(skuCatalog) {
		t.Fatalf("seeded %d skus, want %d", len(skus), len(skuCatalog))
	}

	goal, err := s.GetSetting(ctx, "annual_goal")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if goal.Value != DefaultAnnualGoal {
		t.Fatalf("annual_goal = %q, want %q", goal.Value, DefaultAnnualGoal)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "crm.db")

	s1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	seedContact(t, s1, "Ann")
	if err := s1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer func() { _ = s2.Close() }()

	contacts, err := s2.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("contacts after reopen = %d, want 1", len(contacts))
	}

	skus, err := s2.ListSKUs(context.Background())
	if err != nil {
		t.Fatalf("ListSKUs failed: %v", err)
	}
	if len(skus) != len(skuCatalog) {
		t.Fatalf("skus duplicated on reopen: got %d, want %d", len(skus), len(skuCatalog))
	}
}

func TestPutSettingUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutSetting(ctx, "annual_goal", "2500000"); err != nil {
		t.Fatalf("PutSetting failed: %v", err)
	}
	got, err := s.GetSetting(ctx, "annual_goal")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got.Value != "2500000" {
		t.Fatalf("annual_goal = %q, want 2500000", got.Value)
	}

	if err := s.PutSetting(ctx, "fiscal_year_start", "2026-01-01"); err != nil {
		t.Fatalf("PutSetting insert failed: %v", err)
	}
	if _, err := s.GetSetting(ctx, "fiscal_year_start"); err != nil {
		t.Fatalf("GetSetting after insert failed: %v", err)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSetting(context.Background(), "no_such_key")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
