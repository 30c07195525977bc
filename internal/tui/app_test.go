package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/crmd/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func strp(s string) *string {
	return &s
}

func TestContactMatches(t *testing.T) {
	c := model.Contact{
		Name:    "Ann Chambers",
		Email:   strp("ann@greenfields.example"),
		Company: strp("Green Fields"),
	}

	cases := []struct {
		q    string
		want bool
	}{
		{"ann", true},
		{"chambers", true},
		{"greenfields", true},
		{"green fields", true},
		{"bob", false},
	}
	for _, tc := range cases {
		if got := contactMatches(c, tc.q); got != tc.want {
			t.Errorf("contactMatches(%q) = %v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestDealMatches(t *testing.T) {
	d := model.Deal{
		Title:       "Bulk hemp order",
		Status:      model.StatusOpen,
		ContactName: strp("Ann Chambers"),
		Stage:       strp("negotiation"),
	}

	if !dealMatches(d, "bulk") {
		t.Error("title match failed")
	}
	if !dealMatches(d, "open") {
		t.Error("status match failed")
	}
	if !dealMatches(d, "negotiation") {
		t.Error("stage match failed")
	}
	if dealMatches(d, "widgets") {
		t.Error("unexpected match")
	}
}

func TestTabSwitchingKeys(t *testing.T) {
	a := App{loaded: true}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	a = m.(App)
	if a.activeTab != tabPipeline {
		t.Errorf("after 'p': activeTab = %d, want %d", a.activeTab, tabPipeline)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.activeTab != tabContacts {
		t.Errorf("after tab: activeTab = %d, want %d", a.activeTab, tabContacts)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	a = m.(App)
	if a.activeTab != tabPipeline {
		t.Errorf("after shift+tab: activeTab = %d, want %d", a.activeTab, tabPipeline)
	}
}

func TestSearchOnlyOnListTabs(t *testing.T) {
	a := NewApp(nil)
	a.loaded = true
	a.needSetup = false
	a.activeTab = tabOverview

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	a = m.(App)
	if a.searching {
		t.Error("search should not activate on the overview tab")
	}

	a.activeTab = tabContacts
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	a = m.(App)
	if !a.searching {
		t.Error("search should activate on the contacts tab")
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if a.searching {
		t.Error("esc should close search")
	}
}

func TestClipToViewport(t *testing.T) {
	a := App{height: 12}

	content := strings.Repeat("line\n", 30)
	clipped := a.clipToViewport(content)
	lines := strings.Split(clipped, "\n")
	if len(lines) > 12 {
		t.Errorf("clipped to %d lines, want at most 12", len(lines))
	}

	short := "one\ntwo"
	if got := a.clipToViewport(short); got != short {
		t.Errorf("short content should pass through, got %q", got)
	}
}
