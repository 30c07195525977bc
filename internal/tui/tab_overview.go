package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/tui/components"
	"github.com/theirongolddev/crmd/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.data
	var b strings.Builder

	openDeals := 0
	for _, deal := range d.Deals {
		if deal.Status == model.StatusOpen {
			openDeals++
		}
	}

	// Row 1: Metric cards
	cards := []struct{ Label, Value, Detail string }{
		{"Contacts", cli.FormatNumber(int64(len(d.Contacts))), fmt.Sprintf("%d companies", d.Companies)},
		{"Open Deals", cli.FormatNumber(int64(openDeals)), fmt.Sprintf("%d total", len(d.Deals))},
		{"Forecast", cli.FormatMoney(d.Revenue.Forecast), "open pipeline"},
		{"Realized", cli.FormatMoney(d.Revenue.Realized), "closed revenue"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Annual goal progress
	goalBody := components.GoalBar(
		cli.FormatMoney(d.Goal.ClosedRevenue),
		d.Goal.Percentage/100,
		12,
		components.CardInnerWidth(cw)-22,
	)
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Annual Goal  %s", cli.FormatMoney(d.Goal.AnnualGoal)),
		goalBody,
		cw,
	))
	b.WriteString("\n")

	// Row 3: Monthly forecast chart
	if d.Analytics != nil && len(d.Analytics.MonthlyForecast) > 0 {
		months := make([]string, 0, len(d.Analytics.MonthlyForecast))
		for m := range d.Analytics.MonthlyForecast {
			if m != "No Date Set" {
				months = append(months, m)
			}
		}
		sort.Strings(months)

		if len(months) > 0 {
			vals := make([]float64, len(months))
			labels := make([]string, len(months))
			for i, m := range months {
				vals[i] = d.Analytics.MonthlyForecast[m].Total
				labels[i] = m[5:] // month part of YYYY-MM
			}
			b.WriteString(components.ContentCard(
				"Monthly Forecast",
				components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), 10),
				cw,
			))
			b.WriteString("\n")
		}
	}

	// Row 4: Tasks due this week
	if len(d.Tasks) > 0 {
		var taskBody strings.Builder
		limit := 5
		if len(d.Tasks) < limit {
			limit = len(d.Tasks)
		}
		dueStyle := fg(t.Yellow)
		textStyle := fg(t.TextPrimary)
		mutedStyle := fg(t.TextMuted)
		for _, task := range d.Tasks[:limit] {
			fmt.Fprintf(&taskBody, "%s  %s %s\n",
				dueStyle.Render(cli.FormatOptional(task.DueDate)),
				textStyle.Render(cli.Truncate(cli.FormatOptional(task.Description), 48)),
				mutedStyle.Render(cli.FormatOptional(task.DealTitle)))
		}
		if len(d.Tasks) > limit {
			fmt.Fprintf(&taskBody, "%s\n", mutedStyle.Render(
				fmt.Sprintf("… and %d more on the Tasks tab", len(d.Tasks)-limit)))
		}
		b.WriteString(components.ContentCard("Due This Week", taskBody.String(), cw))
	}

	return b.String()
}
