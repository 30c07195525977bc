package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/tui/components"
	"github.com/theirongolddev/crmd/internal/tui/theme"
)

func (a App) renderDealsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if a.searching || a.searchQuery() != "" {
		b.WriteString(fg(t.TextMuted).Render("  Search: "))
		b.WriteString(a.searchInput.View())
		b.WriteString("\n\n")
	}

	deals := a.filteredDeals()
	if len(deals) == 0 {
		if a.searchQuery() != "" {
			return b.String() + fg(t.TextMuted).Render("  No deals match the search.")
		}
		return fg(t.TextMuted).Render("  No deals yet. Add one with `crmd deals add`.")
	}

	idStyle := fg(t.TextDim)
	titleStyle := fg(t.TextPrimary)
	mutedStyle := fg(t.TextMuted)

	var body strings.Builder
	for _, d := range deals {
		statusColor := t.Blue
		switch d.Status {
		case model.StatusClosed:
			statusColor = t.Green
		case model.StatusOpen:
			statusColor = t.Yellow
		}

		value := "—"
		if d.Value != nil {
			value = cli.FormatMoney(*d.Value)
		}
		stage := ""
		if d.Stage != nil {
			stage = cli.FormatStage(*d.Stage)
		}

		fmt.Fprintf(&body, "%s %s %s  %s  %s %s\n",
			idStyle.Render(fmt.Sprintf("#%-4d", d.ID)),
			fg(statusColor).Render(fmt.Sprintf("%-6s", d.Status)),
			titleStyle.Render(fmt.Sprintf("%-28s", cli.Truncate(d.Title, 28))),
			mutedStyle.Render(fmt.Sprintf("%-20s", cli.Truncate(cli.FormatOptional(d.ContactName), 20))),
			mutedStyle.Render(fmt.Sprintf("%-14s", stage)),
			fg(t.Green).Render(value))
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Deals (%d)", len(deals)), body.String(), cw))
	return b.String()
}

// filteredDeals applies the search box to the deal list.
func (a App) filteredDeals() []model.Deal {
	q := a.searchQuery()
	if q == "" {
		return a.data.Deals
	}

	var out []model.Deal
	for _, d := range a.data.Deals {
		if dealMatches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

func dealMatches(d model.Deal, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(d.Status, q) {
		return true
	}
	for _, f := range []*string{d.ContactName, d.Stage} {
		if f != nil && strings.Contains(strings.ToLower(*f), q) {
			return true
		}
	}
	return false
}
