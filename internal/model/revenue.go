package model

// Revenue partitions deal value by status: open deals feed the forecast
// total, closed deals the realized total.
type Revenue struct {
	Forecast float64 `json:"forecast"`
	Realized float64 `json:"realized"`
}

// GoalProgress reports closed revenue against the configured annual goal.
type GoalProgress struct {
	AnnualGoal    float64 `json:"annual_goal"`
	ClosedRevenue float64 `json:"closed_revenue"`
	Percentage    float64 `json:"percentage"`
}

// StageMetrics aggregates the open deals sitting in one pipeline stage.
type StageMetrics struct {
	Deals         []Deal  `json:"deals"`
	TotalValue    float64 `json:"total_value"`
	WeightedValue float64 `json:"weighted_value"`
	Count         int     `json:"count"`
}

// MonthMetrics aggregates open deals by expected close month.
type MonthMetrics struct {
	Total    float64 `json:"total"`
	Weighted float64 `json:"weighted"`
	Count    int     `json:"count"`
}

// PipelineTotals sums the whole open pipeline.
type PipelineTotals struct {
	Pipeline  float64 `json:"pipeline"`
	Weighted  float64 `json:"weighted"`
	DealCount int     `json:"deal_count"`
}

// PipelineAnalytics is the full pipeline breakdown served at
// /api/pipeline/analytics.
type PipelineAnalytics struct {
	Stages          map[string]*StageMetrics `json:"stages"`
	MonthlyForecast map[string]*MonthMetrics `json:"monthly_forecast"`
	Totals          PipelineTotals           `json:"totals"`
}
