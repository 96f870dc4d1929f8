package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

func (a App) renderChartsTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	avg := a.stats.PerDay
	chartH := max(4, h/2-4)
	chart := components.BarChart(
		components.DailyValues(a.daily),
		components.DateLabels(a.daily),
		t.Accent, inner, chartH, avg,
	)
	legend := lipgloss.NewStyle().Foreground(t.Yellow).Render("┼") +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(" average "+cli.FormatAmount(avg)+"/day")

	daily := components.ContentCard(fmt.Sprintf("Daily spending · %dd", a.days), chart+"\n"+legend, cw)

	catBody := components.CategoryBars(a.stats.Categories, inner, cli.FormatAmount)
	if catBody == "" {
		catBody = lipgloss.NewStyle().Foreground(t.TextMuted).Render("Nothing to chart yet.")
	} else {
		catBody += "\n" + lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("total "+cli.FormatAmount(a.stats.Total))
	}
	cats := components.ContentCard("By category", catBody, cw)

	return lipgloss.JoinVertical(lipgloss.Left, daily, cats)
}
