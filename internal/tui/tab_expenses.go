package tui

import (
	"fmt"
	"strings"

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

// listState holds the Expenses tab state.
type listState struct {
	cursor int
	offset int // scroll offset for the list

	windowOnly bool

	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func (l *listState) moveCursor(delta, n int) {
	l.cursor = max(0, min(l.cursor+delta, n-1))
}

// follow scrolls a viewport of the given height just enough to keep the
// cursor inside it.
func (l *listState) follow(rows int) {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(0, l.offset)
}

// listRows is how many records fit in the Expenses card.
func (a App) listRows() int {
	// card border (2) + title (1) + header (1) + footer (1) + search (1)
	return max(3, a.contentHeight()-6)
}

// visibleExpenses applies the window toggle and the search query.
func (a App) visibleExpenses() []model.Expense {
	expenses := a.expenses
	if a.list.windowOnly {
		now := a.now()
		expenses = pipeline.FilterByDate(expenses, pipeline.WindowStart(now, a.days), model.FormatDate(now))
	}
	return pipeline.Search(expenses, a.list.searchQuery)
}

func (a App) selectedExpense() (model.Expense, bool) {
	visible := a.visibleExpenses()
	if a.list.cursor < 0 || a.list.cursor >= len(visible) {
		return model.Expense{}, false
	}
	return visible[a.list.cursor], true
}

// updateExpensesKey handles list keys. It reports whether the key was used.
func (a App) updateExpensesKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.visibleExpenses())

	switch key {
	case "j", "down":
		a.list.moveCursor(1, n)
	case "k", "up":
		a.list.moveCursor(-1, n)
	case "g", "home":
		a.list.cursor = 0
		a.list.offset = 0
	case "G", "end":
		a.list.cursor = max(0, n-1)
	case "w":
		a.list.windowOnly = !a.list.windowOnly
		a.list.cursor = 0
		a.list.offset = 0
	case "/":
		a.list.searching = true
		a.list.searchInput = newSearchInput()
		a.list.searchInput.SetValue(a.list.searchQuery)
		a.list.searchInput.Focus()
		return a, textinput.Blink, true
	case "esc":
		if a.list.searchQuery == "" {
			return a, nil, false
		}
		a.list.searchQuery = ""
		a.list.cursor = 0
		a.list.offset = 0
	case "d", "delete", "backspace":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil, true
		}
		a.pending = e
		*a.confirmYes = false
		a.confirmForm = newConfirmForm(e, a.confirmYes)
		return a, a.confirmForm.Init(), true
	default:
		return a, nil, false
	}
	a.list.follow(a.listRows())
	return a, nil, true
}

// updateSearch handles key events while the search input is focused.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.list.searchQuery = strings.TrimSpace(a.list.searchInput.Value())
		a.list.searching = false
		a.list.cursor = 0
		a.list.offset = 0
		return a, nil
	case "esc":
		a.list.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.list.searchInput, cmd = a.list.searchInput.Update(msg)
	return a, cmd
}

func newConfirmForm(e model.Expense, yes *bool) *huh.Form {
	title := fmt.Sprintf("Delete expense #%d?", e.ID)
	desc := fmt.Sprintf("%s  %s  %s", e.Date, e.Category, cli.FormatAmount(e.Amount))
	if e.Description != "" {
		desc += "  " + e.Description
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Delete").
				Negative("Cancel").
				Value(yes),
		),
	).WithTheme(theme.Active.Huh()).WithShowHelp(false)
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.confirmForm = nil
		return a, nil
	}

	form, cmd := a.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirmForm = f
	}

	switch a.confirmForm.State {
	case huh.StateCompleted:
		a.confirmForm = nil
		if *a.confirmYes {
			return a, deleteCmd(a.ledger, a.pending.ID)
		}
		a.setStatus("Delete cancelled", false)
		return a, nil
	case huh.StateAborted:
		a.confirmForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) renderConfirm(cw int) string {
	w := min(cw, 64)
	return components.ContentCard("Confirm", a.confirmForm.View(), w)
}

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	visible := a.visibleExpenses()

	title := "Expenses · all"
	if a.list.windowOnly {
		title = fmt.Sprintf("Expenses · last %dd", a.days)
	}

	var top string
	if a.list.searching {
		top = a.list.searchInput.View() + "\n"
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(visible) == 0 {
		msg := "No expenses yet. Press a to add one."
		if a.list.searchQuery != "" || a.list.windowOnly {
			msg = "No expenses match."
		}
		return components.ContentCard(title, top+mutedStyle.Render(msg), cw)
	}

	inner := components.CardInnerWidth(cw)
	amountW := 0
	for _, e := range visible {
		amountW = max(amountW, lipgloss.Width(cli.FormatAmount(e.Amount)))
	}
	const idW, dateW, catW = 6, 10, 14
	descW := max(0, inner-idW-dateW-catW-amountW-4)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	row := func(id, date, cat, amount, desc string) string {
		return fmt.Sprintf("%*s %-*s %-*s %*s %s",
			idW, id, dateW, date, catW, cli.Truncate(cat, catW), amountW, amount, cli.Truncate(desc, descW))
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteString(headerStyle.Render(row("ID", "Date", "Category", "Amount", "Description")))
	b.WriteString("\n")

	rows := max(3, h-6)
	view := a.list
	view.follow(rows)
	offset := view.offset
	end := min(len(visible), offset+rows)

	for i := offset; i < end; i++ {
		e := visible[i]
		line := row(fmt.Sprintf("#%d", e.ID), e.Date, e.Category, cli.FormatAmount(e.Amount), e.Description)
		if i == a.list.cursor {
			b.WriteString(selectedStyle.Width(inner).Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d · total %s",
		len(visible), len(a.expenses), cli.FormatAmount(pipeline.Total(visible)))))

	return components.ContentCard(title, b.String(), cw)
}
