package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/tui/components"
	"github.com/theirongolddev/crmd/internal/tui/theme"
)

func (a App) renderContactsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if a.searching || a.searchQuery() != "" {
		b.WriteString(fg(t.TextMuted).Render("  Search: "))
		b.WriteString(a.searchInput.View())
		b.WriteString("\n\n")
	}

	contacts := a.filteredContacts()
	if len(contacts) == 0 {
		if a.searchQuery() != "" {
			return b.String() + fg(t.TextMuted).Render("  No contacts match the search.")
		}
		return fg(t.TextMuted).Render("  No contacts yet. Add one with `crmd contacts add`.")
	}

	idStyle := fg(t.TextDim)
	nameStyle := fg(t.TextPrimary)
	mutedStyle := fg(t.TextMuted)

	var body strings.Builder
	for _, c := range contacts {
		company := c.CompanyName
		if company == nil {
			company = c.Company
		}
		fmt.Fprintf(&body, "%s %s  %s  %s\n",
			idStyle.Render(fmt.Sprintf("#%-4d", c.ID)),
			nameStyle.Render(fmt.Sprintf("%-26s", cli.Truncate(c.Name, 26))),
			mutedStyle.Render(fmt.Sprintf("%-30s", cli.Truncate(cli.FormatOptional(c.Email), 30))),
			mutedStyle.Render(cli.Truncate(cli.FormatOptional(company), 24)))
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Contacts (%d)", len(contacts)), body.String(), cw))
	return b.String()
}

// filteredContacts applies the search box to the contact list.
func (a App) filteredContacts() []model.Contact {
	q := a.searchQuery()
	if q == "" {
		return a.data.Contacts
	}

	var out []model.Contact
	for _, c := range a.data.Contacts {
		if contactMatches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func contactMatches(c model.Contact, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, f := range []*string{c.Email, c.Company, c.CompanyName, c.Title} {
		if f != nil && strings.Contains(strings.ToLower(*f), q) {
			return true
		}
	}
	return false
}
