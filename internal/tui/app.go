// Package tui provides the interactive Bubble Tea dashboard for crmd.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/config"
	"github.com/theirongolddev/crmd/internal/model"
	"github.com/theirongolddev/crmd/internal/store"
	"github.com/theirongolddev/crmd/internal/tui/components"
	"github.com/theirongolddev/crmd/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dashboardData is one consistent snapshot of everything the tabs render.
type dashboardData struct {
	Contacts  []model.Contact
	Deals     []model.Deal
	Tasks     []model.Task
	Revenue   model.Revenue
	Goal      model.GoalProgress
	Analytics *model.PipelineAnalytics
	Companies int
}

// DataLoadedMsg is sent when a dashboard snapshot finishes loading.
type DataLoadedMsg struct {
	Data     dashboardData
	LoadTime time.Duration
}

// LoadErrMsg is sent when the snapshot load fails.
type LoadErrMsg struct {
	Err error
}

// Tab indices, matching components.Tabs order.
const (
	tabOverview = iota
	tabPipeline
	tabContacts
	tabDeals
	tabTasks
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
)

// App is the root Bubble Tea model.
type App struct {
	st *store.Store

	// Data
	data     dashboardData
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	scroll    int

	// Contact search
	searchInput textinput.Model
	searching   bool

	// First-run setup
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

type setupValues struct {
	goal  string
	theme string
}

// NewApp creates a new TUI app model backed by the given store.
func NewApp(st *store.Store) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	search := textinput.New()
	search.Placeholder = "name, email, or company"
	search.CharLimit = 64
	search.Width = 32

	a := App{
		st:          st,
		searchInput: search,
		spinner:     sp,
		needSetup:   !config.Exists(),
	}
	if a.needSetup {
		a.setupVals = &setupValues{goal: "1000000", theme: "flexoki-dark"}
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Annual revenue goal (USD)").
				Value(&vals.goal).
				Validate(func(s string) error {
					s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)
}

// Init kicks off the spinner and the first data load.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, a.loadData()}
	if a.needSetup {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// loadData reads a full dashboard snapshot off the store.
func (a App) loadData() tea.Cmd {
	st := a.st
	return func() tea.Msg {
		start := time.Now()
		ctx := context.Background()

		var data dashboardData
		var err error

		if data.Contacts, err = st.ListContacts(ctx); err != nil {
			return LoadErrMsg{Err: err}
		}
		if data.Deals, err = st.ListDeals(ctx); err != nil {
			return LoadErrMsg{Err: err}
		}
		if data.Revenue, err = st.Revenue(ctx); err != nil {
			return LoadErrMsg{Err: err}
		}
		if data.Goal, err = st.GoalProgress(ctx); err != nil {
			return LoadErrMsg{Err: err}
		}
		if data.Analytics, err = st.PipelineAnalytics(ctx); err != nil {
			return LoadErrMsg{Err: err}
		}

		monday, sunday := store.WeekBounds(time.Now())
		if data.Tasks, err = st.TasksDueBetween(ctx, monday, sunday); err != nil {
			return LoadErrMsg{Err: err}
		}

		if _, companies, _, err := st.Counts(ctx); err == nil {
			data.Companies = companies
		}

		return DataLoadedMsg{Data: data, LoadTime: time.Since(start)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.data = msg.Data
		a.loaded = true
		a.loadErr = nil
		a.loadTime = msg.LoadTime
		return a, nil

	case LoadErrMsg:
		a.loaded = true
		a.loadErr = msg.Err
		return a, nil

	case spinner.TickMsg:
		if a.loaded && !a.needSetup {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.needSetup {
		return a.updateSetup(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(key)
	}

	return a, nil
}

func (a App) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return a, tea.Quit
		}
	}

	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.finishSetup()
		a.needSetup = false
		return a, a.loadData()
	}
	return a, cmd
}

// finishSetup persists the wizard answers to the config file and keeps
// the database goal setting in sync.
func (a *App) finishSetup() {
	cfg, _ := config.Load()

	raw := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(a.setupVals.goal), "$"), ",", "")
	if goal, err := strconv.ParseFloat(raw, 64); err == nil && goal > 0 {
		cfg.CRM.AnnualGoal = goal
		_ = a.st.PutSetting(context.Background(), "annual_goal",
			strconv.FormatFloat(goal, 'f', -1, 64))
	}
	cfg.Appearance.Theme = a.setupVals.theme
	theme.SetActive(a.setupVals.theme)

	_ = config.Save(cfg)
}

func (a App) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		switch key.String() {
		case "esc":
			a.searching = false
			a.searchInput.Blur()
			a.searchInput.SetValue("")
			return a, nil
		case "enter":
			a.searching = false
			a.searchInput.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(key)
			return a, cmd
		}
	}

	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "r":
		a.loaded = false
		return a, tea.Batch(a.spinner.Tick, a.loadData())
	case "/":
		if a.activeTab == tabContacts || a.activeTab == tabDeals {
			a.searching = true
			a.searchInput.Focus()
			return a, textinput.Blink
		}
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		a.scroll = 0
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		a.scroll = 0
	case "j", "down":
		a.scroll++
	case "k", "up":
		if a.scroll > 0 {
			a.scroll--
		}
	case "g":
		a.scroll = 0
	default:
		runes := []rune(key.String())
		if len(runes) == 1 {
			if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
				a.activeTab = idx
				a.scroll = 0
			}
		}
	}
	return a, nil
}

func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d)\n", a.width, minTerminalWidth)
	}

	if a.needSetup {
		return "\n" + a.setupForm.View()
	}

	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Loading CRM data...\n", a.spinner.View())
	}
	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.Active.Red)
		return errStyle.Render(fmt.Sprintf("\n\n  Could not load data: %v\n\n  [r]etry  [q]uit\n", a.loadErr))
	}

	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}

	var b strings.Builder
	b.WriteString(a.renderHeader(cw))
	b.WriteString("\n")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabPipeline:
		content = a.renderPipelineTab(cw)
	case tabContacts:
		content = a.renderContactsTab(cw)
	case tabDeals:
		content = a.renderDealsTab(cw)
	case tabTasks:
		content = a.renderTasksTab(cw)
	}
	b.WriteString(a.clipToViewport(content))
	b.WriteString("\n")

	summary := fmt.Sprintf("%d contacts · %d deals", len(a.data.Contacts), len(a.data.Deals))
	b.WriteString(components.RenderStatusBar(cw, summary))

	return b.String()
}

func (a App) renderHeader(cw int) string {
	t := theme.Active

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(" crmd")
	rev := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
		fmt.Sprintf("forecast %s · realized %s ",
			cli.FormatMoney(a.data.Revenue.Forecast),
			cli.FormatMoney(a.data.Revenue.Realized)))

	padding := cw - lipgloss.Width(title) - lipgloss.Width(rev)
	if padding < 1 {
		padding = 1
	}
	return title + strings.Repeat(" ", padding) + rev
}

// clipToViewport trims rendered content to the visible rows, honoring the
// current scroll offset.
func (a App) clipToViewport(content string) string {
	if a.height <= 0 {
		return content
	}

	avail := a.height - 6 // header, tab bar, status bar, spacing
	if avail < 5 {
		avail = 5
	}

	lines := strings.Split(content, "\n")
	if len(lines) <= avail {
		return content
	}

	offset := a.scroll
	if offset > len(lines)-avail {
		offset = len(lines) - avail
	}
	return strings.Join(lines[offset:offset+avail], "\n")
}

// searchQuery returns the lowercased active search filter, if any.
func (a App) searchQuery() string {
	return strings.ToLower(strings.TrimSpace(a.searchInput.Value()))
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
