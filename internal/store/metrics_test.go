package store

import (
	"context"
	"testing"

	"github.com/theirongolddev/crmd/internal/model"
)

func TestRevenuePartitionsByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	seedDeal(t, s, &c.ID, "A", 100, model.StatusOpen)
	seedDeal(t, s, &c.ID, "B", 50, model.StatusClosed)
	seedDeal(t, s, &c.ID, "C", 30, model.StatusOpen)
	seedDeal(t, s, &c.ID, "D", 999, "stalled") // unrecognized status, excluded

	rev, err := s.Revenue(ctx)
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}
	if rev.Forecast != 130 {
		t.Errorf("Forecast = %v, want 130", rev.Forecast)
	}
	if rev.Realized != 50 {
		t.Errorf("Realized = %v, want 50", rev.Realized)
	}
}

func TestRevenueEmpty(t *testing.T) {
	s := newTestStore(t)

	rev, err := s.Revenue(context.Background())
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}
	if rev.Forecast != 0 || rev.Realized != 0 {
		t.Errorf("empty db revenue = %+v, want zeros", rev)
	}
}

func TestGoalProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutSetting(ctx, "annual_goal", "200000"); err != nil {
		t.Fatalf("PutSetting failed: %v", err)
	}

	c := seedContact(t, s, "Ann")
	d := seedDeal(t, s, &c.ID, "Closed one", 60000, model.StatusClosed)
	if _, err := s.UpdateDeal(ctx, d.ID, model.DealUpdate{ClosedRevenue: floatp(50000)}); err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}

	gp, err := s.GoalProgress(ctx)
	if err != nil {
		t.Fatalf("GoalProgress failed: %v", err)
	}
	if gp.AnnualGoal != 200000 {
		t.Errorf("AnnualGoal = %v, want 200000", gp.AnnualGoal)
	}
	if gp.ClosedRevenue != 50000 {
		t.Errorf("ClosedRevenue = %v, want 50000", gp.ClosedRevenue)
	}
	if gp.Percentage != 25 {
		t.Errorf("Percentage = %v, want 25", gp.Percentage)
	}
}

func TestPipelineAnalytics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")

	mk := func(title, stage string, value float64, prob int64, close string) {
		_, err := s.CreateDeal(ctx, model.Deal{
			ContactID:         &c.ID,
			Title:             title,
			Value:             floatp(value),
			Probability:       intp(prob),
			Stage:             strp(stage),
			Status:            model.StatusOpen,
			ExpectedCloseDate: strp(close),
		}, nil)
		if err != nil {
			t.Fatalf("CreateDeal failed: %v", err)
		}
	}

	mk("Q1", "qualification", 1000, 20, "2026-09-15")
	mk("Q2", "qualification", 500, 40, "2026-09-30")
	mk("N1", "negotiation", 2000, 80, "2026-10-01")
	seedDeal(t, s, &c.ID, "Done", 750, model.StatusClosed) // closed, excluded

	pa, err := s.PipelineAnalytics(ctx)
	if err != nil {
		t.Fatalf("PipelineAnalytics failed: %v", err)
	}

	q := pa.Stages["qualification"]
	if q.Count != 2 || q.TotalValue != 1500 {
		t.Errorf("qualification = count %d total %v, want 2/1500", q.Count, q.TotalValue)
	}
	if q.WeightedValue != 400 { // 1000*0.2 + 500*0.4
		t.Errorf("qualification weighted = %v, want 400", q.WeightedValue)
	}
	if pa.Stages["proposal"].Count != 0 {
		t.Errorf("proposal should be present and empty")
	}

	if pa.Totals.Pipeline != 3500 || pa.Totals.DealCount != 3 {
		t.Errorf("totals = %+v, want pipeline 3500 over 3 deals", pa.Totals)
	}

	sep := pa.MonthlyForecast["2026-09"]
	if sep == nil || sep.Count != 2 || sep.Total != 1500 {
		t.Errorf("2026-09 bucket = %+v, want 2 deals totaling 1500", sep)
	}
}

func TestPipelineAnalyticsNoDateBucket(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	_, err := s.CreateDeal(ctx, model.Deal{
		ContactID: &c.ID,
		Title:     "Undated",
		Value:     floatp(100),
		Stage:     strp("proposal"),
		Status:    model.StatusOpen,
	}, nil)
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	pa, err := s.PipelineAnalytics(ctx)
	if err != nil {
		t.Fatalf("PipelineAnalytics failed: %v", err)
	}
	if pa.MonthlyForecast["No Date Set"] == nil {
		t.Fatal("missing No Date Set bucket")
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	seedDeal(t, s, &c.ID, "Order", 100, model.StatusOpen)

	contacts, companies, deals, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if contacts != 1 || companies != 0 || deals != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/0/1", contacts, companies, deals)
	}
}
