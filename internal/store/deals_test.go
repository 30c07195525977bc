package store

import (
	"context"
	"testing"

	"github.com/theirongolddev/crmd/internal/model"
)

func TestCreateDealDefaultsAndJoin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	d, err := s.CreateDeal(ctx, model.Deal{
		ContactID: &c.ID,
		Title:     "Insulation order",
		Value:     floatp(4200),
	}, nil)
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if d.Status != model.StatusOpen {
		t.Errorf("Status = %q, want default open", d.Status)
	}
	if d.ContactName == nil || *d.ContactName != "Ann" {
		t.Errorf("ContactName = %v, want Ann", d.ContactName)
	}
	if len(d.SKUs) != 0 {
		t.Errorf("SKUs = %v, want empty", d.SKUs)
	}
}

func TestCreateDealWithSKUs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	skus, err := s.ListSKUs(ctx)
	if err != nil {
		t.Fatalf("ListSKUs failed: %v", err)
	}

	c := seedContact(t, s, "Ann")
	d, err := s.CreateDeal(ctx, model.Deal{
		ContactID: &c.ID,
		Title:     "Fiber order",
	}, []int64{skus[0].ID, skus[1].ID})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if len(d.SKUs) != 2 {
		t.Fatalf("SKUs len = %d, want 2", len(d.SKUs))
	}
}

func TestListDealsNewestFirstWithContactName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	seedDeal(t, s, &c.ID, "First", 100, model.StatusOpen)
	seedDeal(t, s, nil, "Orphan", 50, model.StatusOpen)

	deals, err := s.ListDeals(ctx)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("len = %d, want 2", len(deals))
	}

	var linked, orphan *model.Deal
	for i := range deals {
		if deals[i].Title == "First" {
			linked = &deals[i]
		} else {
			orphan = &deals[i]
		}
	}
	if linked == nil || linked.ContactName == nil || *linked.ContactName != "Ann" {
		t.Errorf("linked deal missing joined contact name")
	}
	if orphan == nil || orphan.ContactName != nil {
		t.Errorf("orphan deal ContactName should be nil")
	}
}

func TestUpdateDealPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	d := seedDeal(t, s, &c.ID, "Insulation order", 1000, model.StatusOpen)

	got, err := s.UpdateDeal(ctx, d.ID, model.DealUpdate{
		Status:        strp(model.StatusClosed),
		ClosedRevenue: floatp(950),
	})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}

	if got.Status != model.StatusClosed {
		t.Errorf("Status = %q, want closed", got.Status)
	}
	if got.ClosedRevenue != 950 {
		t.Errorf("ClosedRevenue = %v, want 950", got.ClosedRevenue)
	}
	if got.Title != "Insulation order" {
		t.Errorf("Title = %q, want unchanged", got.Title)
	}
	if got.Value == nil || *got.Value != 1000 {
		t.Errorf("Value = %v, want unchanged 1000", got.Value)
	}
}

func TestUpdateDealResyncsSKUs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	skus, err := s.ListSKUs(ctx)
	if err != nil {
		t.Fatalf("ListSKUs failed: %v", err)
	}

	c := seedContact(t, s, "Ann")
	d, err := s.CreateDeal(ctx, model.Deal{ContactID: &c.ID, Title: "Order"}, []int64{skus[0].ID})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	got, err := s.UpdateDeal(ctx, d.ID, model.DealUpdate{
		SKUIDs: []int64{skus[1].ID, skus[2].ID},
	})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if len(got.SKUs) != 2 {
		t.Fatalf("SKUs len = %d, want 2 after resync", len(got.SKUs))
	}
	for _, sku := range got.SKUs {
		if sku.ID == skus[0].ID {
			t.Errorf("old sku link %d survived resync", sku.ID)
		}
	}
}

func TestUpdateDealNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateDeal(context.Background(), 7, model.DealUpdate{Title: strp("Ghost")})
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDealCascadesSKULinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	skus, err := s.ListSKUs(ctx)
	if err != nil {
		t.Fatalf("ListSKUs failed: %v", err)
	}

	c := seedContact(t, s, "Ann")
	d, err := s.CreateDeal(ctx, model.Deal{ContactID: &c.ID, Title: "Order"}, []int64{skus[0].ID})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if err := s.DeleteDeal(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDeal failed: %v", err)
	}
	if _, err := s.GetDeal(ctx, d.ID); err != ErrNotFound {
		t.Fatalf("GetDeal after delete: err = %v, want ErrNotFound", err)
	}

	var links int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM deal_skus WHERE deal_id = ?", d.ID).Scan(&links); err != nil {
		t.Fatalf("counting links failed: %v", err)
	}
	if links != 0 {
		t.Errorf("deal_skus rows = %d, want 0 after cascade", links)
	}

	if err := s.DeleteDeal(ctx, d.ID); err != ErrNotFound {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}
