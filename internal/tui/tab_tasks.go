package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/tui/components"
	"github.com/theirongolddev/crmd/internal/tui/theme"
)

func (a App) renderTasksTab(cw int) string {
	t := theme.Active

	if len(a.data.Tasks) == 0 {
		return fg(t.TextMuted).Render("  Nothing due this week.")
	}

	dueStyle := fg(t.Yellow)
	typeStyle := fg(t.Cyan)
	textStyle := fg(t.TextPrimary)
	mutedStyle := fg(t.TextMuted)

	var body strings.Builder
	for _, task := range a.data.Tasks {
		line := fmt.Sprintf("%s %s %s",
			dueStyle.Render(fmt.Sprintf("%-11s", cli.FormatOptional(task.DueDate))),
			typeStyle.Render(fmt.Sprintf("%-9s", cli.FormatOptional(task.Type))),
			textStyle.Render(cli.Truncate(cli.FormatOptional(task.Description), 44)))

		var links []string
		if task.DealTitle != nil {
			links = append(links, *task.DealTitle)
		}
		if task.ContactName != nil {
			links = append(links, *task.ContactName)
		}
		if len(links) > 0 {
			line += "  " + mutedStyle.Render(strings.Join(links, " · "))
		}

		body.WriteString(line)
		body.WriteString("\n")
		if task.NextSteps != nil && *task.NextSteps != "" {
			fmt.Fprintf(&body, "            %s\n",
				mutedStyle.Render("next: "+cli.Truncate(*task.NextSteps, 56)))
		}
	}

	return components.ContentCard(
		fmt.Sprintf("Due This Week (%d)", len(a.data.Tasks)), body.String(), cw)
}
