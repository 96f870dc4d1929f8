// Package tui provides the interactive Bubble Tea dashboard for spend.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

// Ledger is the part of the expense store the dashboard uses.
type Ledger interface {
	ListAll(ctx context.Context) ([]model.Expense, error)
	Insert(ctx context.Context, category string, amount float64, date, description string) (int64, error)
	Delete(ctx context.Context, id int64) error
	Today() string
}

// ExpensesLoadedMsg is sent when the ledger has been read.
type ExpensesLoadedMsg struct {
	Expenses []model.Expense
	LoadTime time.Duration
	Err      error
}

// ExpenseSavedMsg is sent after an insert from the Add tab.
type ExpenseSavedMsg struct {
	ID  int64
	Err error
}

// ExpenseDeletedMsg is sent after a confirmed delete.
type ExpenseDeletedMsg struct {
	ID  int64
	Err error
}

// Options configures a new App.
type Options struct {
	Days       int
	Categories []string
}

// App is the root Bubble Tea model.
type App struct {
	ledger Ledger
	now    func() time.Time

	// Data
	expenses []model.Expense
	loaded   bool
	loading  bool
	loadTime time.Duration

	// Pre-computed for the current window
	stats     model.SummaryStats
	prevStats model.SummaryStats
	daily     []model.DailyTotal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string
	statusErr bool

	days       int
	categories []string

	list listState

	// Add tab form; values live behind a pointer so copies of App share them
	addForm *huh.Form
	addVals *addValues

	// Delete confirmation
	confirmForm *huh.Form
	confirmYes  *bool
	pending     model.Expense

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new dashboard over the given ledger.
func NewApp(ledger Ledger, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	days := opts.Days
	if days < 1 {
		days = 30
	}
	cats := opts.Categories
	if len(cats) == 0 {
		cats = model.DefaultCategories
	}

	return App{
		ledger:     ledger,
		now:        time.Now,
		days:       days,
		categories: cats,
		loading:    true,
		spinner:    sp,
		addVals:    &addValues{},
		confirmYes: new(bool),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.ledger),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	now := a.now()
	a.stats = pipeline.Aggregate(a.expenses, now, a.days)
	a.prevStats = pipeline.AggregatePrevious(a.expenses, now, a.days)
	a.daily = pipeline.AggregateDays(a.expenses, now.AddDate(0, 0, -a.days), now)

	visible := a.visibleExpenses()
	if a.list.cursor >= len(visible) {
		a.list.cursor = len(visible) - 1
	}
	if a.list.cursor < 0 {
		a.list.cursor = 0
	}
	a.list.follow(a.listRows())
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(a.formWidth())
		}
		a.list.follow(a.listRows())
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.confirmForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == components.TabExpenses {
				a.list.moveCursor(-1, len(a.visibleExpenses()))
				a.list.follow(a.listRows())
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == components.TabExpenses {
				a.list.moveCursor(1, len(a.visibleExpenses()))
				a.list.follow(a.listRows())
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionRelease && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					return a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ExpensesLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.loaded = true
			a.setStatus("Load failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.expenses = msg.Expenses
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.recompute()
		return a, nil

	case ExpenseSavedMsg:
		if msg.Err != nil {
			a.setStatus("Save failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Saved expense #%d", msg.ID), false)
		a.loading = true
		return a, loadCmd(a.ledger)

	case ExpenseDeletedMsg:
		if msg.Err != nil {
			a.setStatus("Delete failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Deleted expense #%d", msg.ID), false)
		a.loading = true
		return a, loadCmd(a.ledger)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, field messages) to the
	// active form.
	if a.confirmForm != nil {
		return a.updateConfirm(msg)
	}
	if a.activeTab == components.TabAdd && a.addForm != nil {
		return a.updateAddForm(msg)
	}
	if a.list.searching {
		var cmd tea.Cmd
		a.list.searchInput, cmd = a.list.searchInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Modal forms intercept all keys
	if a.confirmForm != nil {
		return a.updateConfirm(msg)
	}
	if a.activeTab == components.TabAdd && a.addForm != nil {
		if key == "esc" {
			a.addForm = nil
			a.activeTab = components.TabExpenses
			return a, nil
		}
		return a.updateAddForm(msg)
	}
	if a.list.searching {
		return a.updateSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == components.TabExpenses {
		if m, cmd, handled := a.updateExpensesKey(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.loading {
			return a, nil
		}
		a.loading = true
		a.setStatus("Reloading…", false)
		return a, loadCmd(a.ledger)
	case "left", "h":
		return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right", "l", "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs))
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			return a.switchTab(idx)
		}
	}
	return a, nil
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	if idx == components.TabAdd && a.addForm == nil {
		a.addForm = a.newAddForm()
		return a, a.addForm.Init()
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  spend needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := logoStyle.Render("◈ spend") + subtitleStyle.Render(" · expense ledger") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Reading ledger…")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"e a s c", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in list"},
			{"g G", "First / Last record"},
		}},
		{"Actions", [][2]string{
			{"/", "Search category or description"},
			{"w", "Toggle window / all records"},
			{"d", "Delete selected record"},
			{"Esc", "Clear search / Leave form"},
			{"r", "Reload"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for _, s := range sections {
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

// contentHeight is the height left for the active tab between the two-line
// header and the status bar.
func (a App) contentHeight() int {
	header := lipgloss.Height(components.RenderTabBar(a.activeTab, a.width)) + 1
	status := lipgloss.Height(components.RenderStatusBar(a.width, a.status, components.StatusInfo, ""))
	return max(minContentHeight, a.height-header-status)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	filter := pillStyle.Render(" window ") + accentStyle.Render(fmt.Sprintf("%dd", a.days))
	if a.list.searchQuery != "" {
		filter += pillStyle.Render(" │ search ") + accentStyle.Render(a.list.searchQuery)
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" + filter

	info := fmt.Sprintf("%d records · %s", len(a.expenses), cli.Currency())
	if a.loading {
		info = "loading… · " + info
	}
	kind := components.StatusInfo
	switch {
	case a.statusErr:
		kind = components.StatusError
	case a.status != "":
		kind = components.StatusOK
	}
	statusBar := components.RenderStatusBar(w, a.status, kind, info)

	contentH := a.contentHeight()

	var content string
	switch a.activeTab {
	case components.TabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case components.TabAdd:
		content = a.renderAddTab(cw)
	case components.TabSummary:
		content = a.renderSummaryTab(cw)
	case components.TabCharts:
		content = a.renderChartsTab(cw, contentH)
	}
	if a.confirmForm != nil {
		content = a.renderConfirm(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(w, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Commands ───────────────────────────────────────────────────

func loadCmd(ledger Ledger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		expenses, err := ledger.ListAll(context.Background())
		return ExpensesLoadedMsg{Expenses: expenses, LoadTime: time.Since(start), Err: err}
	}
}

func insertCmd(ledger Ledger, e model.Expense) tea.Cmd {
	return func() tea.Msg {
		id, err := ledger.Insert(context.Background(), e.Category, e.Amount, e.Date, e.Description)
		return ExpenseSavedMsg{ID: id, Err: err}
	}
}

func deleteCmd(ledger Ledger, id int64) tea.Cmd {
	return func() tea.Msg {
		return ExpenseDeletedMsg{ID: id, Err: ledger.Delete(context.Background(), id)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths RenderTabBar renders with.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "category or description"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
