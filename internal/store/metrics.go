package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/crmd/internal/model"
)

// Revenue sums deal values by status: open feeds forecast, closed feeds
// realized. Deals with any other status count toward neither.
func (s *Store) Revenue(ctx context.Context) (model.Revenue, error) {
	var rev model.Revenue

	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(value), 0) FROM deals WHERE status = ?", model.StatusOpen,
	).Scan(&rev.Forecast)
	if err != nil {
		return rev, fmt.Errorf("summing open deals: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(value), 0) FROM deals WHERE status = ?", model.StatusClosed,
	).Scan(&rev.Realized)
	if err != nil {
		return rev, fmt.Errorf("summing closed deals: %w", err)
	}

	return rev, nil
}

// GoalProgress reports total closed revenue against the annual_goal setting.
func (s *Store) GoalProgress(ctx context.Context) (model.GoalProgress, error) {
	gp := model.GoalProgress{}

	goal, err := s.GetSetting(ctx, "annual_goal")
	if err == nil {
		gp.AnnualGoal, _ = strconv.ParseFloat(goal.Value, 64)
	}
	if gp.AnnualGoal == 0 {
		gp.AnnualGoal, _ = strconv.ParseFloat(DefaultAnnualGoal, 64)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(closed_revenue), 0) FROM deals",
	).Scan(&gp.ClosedRevenue)
	if err != nil {
		return gp, fmt.Errorf("summing closed revenue: %w", err)
	}

	if gp.AnnualGoal > 0 {
		gp.Percentage = gp.ClosedRevenue / gp.AnnualGoal * 100
	}
	return gp, nil
}

// PipelineAnalytics groups open deals by stage with probability-weighted
// values and buckets them into a monthly forecast by expected close date.
func (s *Store) PipelineAnalytics(ctx context.Context) (*model.PipelineAnalytics, error) {
	deals, err := s.ListOpenDeals(ctx)
	if err != nil {
		return nil, err
	}

	pa := &model.PipelineAnalytics{
		Stages:          make(map[string]*model.StageMetrics, len(model.Stages)),
		MonthlyForecast: make(map[string]*model.MonthMetrics),
	}
	for _, stage := range model.Stages {
		pa.Stages[stage] = &model.StageMetrics{Deals: []model.Deal{}}
	}

	for _, d := range deals {
		value := 0.0
		if d.Value != nil {
			value = *d.Value
		}
		weighted := 0.0
		if d.Value != nil && d.Probability != nil {
			weighted = *d.Value * float64(*d.Probability) / 100
		}

		if d.Stage != nil {
			if sm, ok := pa.Stages[*d.Stage]; ok {
				sm.Deals = append(sm.Deals, d)
				sm.TotalValue += value
				sm.WeightedValue += weighted
				sm.Count++
			}
		}

		month := "No Date Set"
		if d.ExpectedCloseDate != nil && len(*d.ExpectedCloseDate) >= 7 {
			month = (*d.ExpectedCloseDate)[:7] // yyyy-mm
		}
		mm := pa.MonthlyForecast[month]
		if mm == nil {
			mm = &model.MonthMetrics{}
			pa.MonthlyForecast[month] = mm
		}
		mm.Total += value
		mm.Weighted += weighted
		mm.Count++
	}

	for _, sm := range pa.Stages {
		pa.Totals.Pipeline += sm.TotalValue
		pa.Totals.Weighted += sm.WeightedValue
		pa.Totals.DealCount += sm.Count
	}

	return pa, nil
}

// Counts returns the number of rows in the main entity tables, for the CLI
// summary report.
func (s *Store) Counts(ctx context.Context) (contacts, companies, deals int, err error) {
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"contacts", &contacts},
		{"companies", &companies},
		{"deals", &deals},
	} {
		if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dest); err != nil {
			err = fmt.Errorf("counting %s: %w", q.table, err)
			return
		}
	}
	return
}
