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

func (a App) renderPipelineTab(cw int) string {
	t := theme.Active
	pa := a.data.Analytics
	var b strings.Builder

	if pa == nil || pa.Totals.DealCount == 0 {
		return fg(t.TextMuted).Render("  No open deals in the pipeline.")
	}

	// Stage breakdown with horizontal bars
	innerW := components.CardInnerWidth(cw)

	var maxWeighted float64
	for _, stage := range model.Stages {
		if m := pa.Stages[stage]; m != nil && m.WeightedValue > maxWeighted {
			maxWeighted = m.WeightedValue
		}
	}

	nameW := 16
	barMax := innerW - nameW - 30
	if barMax < 8 {
		barMax = 8
	}

	nameStyle := fg(t.TextPrimary)
	barStyle := fg(t.Accent)
	valStyle := fg(t.TextMuted)

	var stageBody strings.Builder
	for _, stage := range model.Stages {
		m := pa.Stages[stage]
		if m == nil {
			continue
		}
		barLen := 0
		if maxWeighted > 0 {
			barLen = int(m.WeightedValue / maxWeighted * float64(barMax))
		}
		fmt.Fprintf(&stageBody, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, cli.FormatStage(stage))),
			barStyle.Render(strings.Repeat("█", barLen)),
			valStyle.Render(fmt.Sprintf("%s weighted · %d deals",
				cli.FormatMoney(m.WeightedValue), m.Count)))
	}
	fmt.Fprintf(&stageBody, "\n%s\n", valStyle.Render(
		fmt.Sprintf("Pipeline %s · weighted %s · %d deals",
			cli.FormatMoney(pa.Totals.Pipeline),
			cli.FormatMoney(pa.Totals.Weighted),
			pa.Totals.DealCount)))

	b.WriteString(components.ContentCard("Stages", stageBody.String(), cw))
	b.WriteString("\n")

	// Monthly forecast detail rows
	months := make([]string, 0, len(pa.MonthlyForecast))
	for m := range pa.MonthlyForecast {
		months = append(months, m)
	}
	sort.Strings(months)

	var monthBody strings.Builder
	for _, m := range months {
		f := pa.MonthlyForecast[m]
		fmt.Fprintf(&monthBody, "%s  %s  %s\n",
			nameStyle.Render(fmt.Sprintf("%-12s", m)),
			valStyle.Render(fmt.Sprintf("%2d deals", f.Count)),
			fg(t.Green).Render(cli.FormatMoney(f.Total)))
	}
	b.WriteString(components.ContentCard("Monthly Forecast", monthBody.String(), cw))

	return b.String()
}
