package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

// addValues holds the Add form's bound field values.
type addValues struct {
	category    string
	amount      string
	date        string
	description string
}

// toExpense converts validated form values to a record ready for Insert.
func (v addValues) toExpense() (model.Expense, error) {
	return model.NewExpense(v.category, v.amount, v.date, v.description)
}

func (a App) formWidth() int {
	w := min(a.contentWidth(), 64) - 4
	if w < 20 {
		w = 40
	}
	return w
}

func (a App) newAddForm() *huh.Form {
	*a.addVals = addValues{
		category: a.categories[0],
		date:     a.ledger.Today(),
	}
	return newExpenseForm(a.addVals, a.categories).
		WithTheme(theme.Active.Huh()).
		WithWidth(a.formWidth())
}

// newExpenseForm builds the entry form bound to vals. Validation errors
// are reported inline on the field.
func newExpenseForm(vals *addValues, categories []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&vals.category),
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Validate(func(s string) error {
					_, err := model.ParseAmount(s)
					return err
				}).
				Value(&vals.amount),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for today").
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					return err
				}).
				Value(&vals.date),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				CharLimit(120).
				Value(&vals.description),
		),
	)
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		e, err := a.addVals.toExpense()
		a.addForm = a.newAddForm()
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, a.addForm.Init()
		}
		return a, tea.Batch(insertCmd(a.ledger, e), a.addForm.Init())
	case huh.StateAborted:
		a.addForm = nil
		a.activeTab = components.TabExpenses
		return a, nil
	}
	return a, cmd
}

func (a App) renderAddTab(cw int) string {
	t := theme.Active
	w := min(cw, 64)

	hint := lipgloss.NewStyle().Foreground(t.TextDim).
		Render("enter next · shift+tab back · esc leave")

	body := hint
	if a.addForm != nil {
		body = a.addForm.View() + "\n" + hint
	}
	return components.ContentCard("Add expense", body, w)
}
