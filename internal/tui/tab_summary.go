package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	stats := a.stats
	prev := a.prevStats

	var b strings.Builder

	perDay := components.Metric{Label: "Per day", Value: cli.FormatAmount(stats.PerDay)}
	if prev.Total > 0 {
		perDay.Delta = cli.FormatDelta(stats.PerDay, prev.PerDay) + " vs prev"
		perDay.Up = stats.PerDay > prev.PerDay
	}
	total := components.Metric{Label: fmt.Sprintf("Total · %dd", a.days), Value: cli.FormatAmount(stats.Total)}
	if prev.Total > 0 {
		total.Delta = cli.FormatDelta(stats.Total, prev.Total)
		total.Up = stats.Total > prev.Total
	}
	top := stats.TopCategory
	if top == "" {
		top = "—"
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		total,
		perDay,
		{Label: "Records", Value: cli.FormatNumber(int64(stats.Count)),
			Delta: fmt.Sprintf("%d active days", stats.ActiveDays)},
		{Label: "Top category", Value: top},
	}, cw))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(stats.Categories) == 0 {
		b.WriteString(components.ContentCard("By category",
			mutedStyle.Render(fmt.Sprintf("No expenses in the last %d days.", a.days)), cw))
		return b.String()
	}

	inner := components.CardInnerWidth(cw)
	shares := components.ShareBars(stats.Categories, inner, cli.FormatAmount)

	var rows strings.Builder
	rows.WriteString(shares)
	rows.WriteString("\n\n")
	rows.WriteString(mutedStyle.Render(fmt.Sprintf("%d categories · %s per active day",
		len(stats.Categories), cli.FormatAmount(stats.PerActiveDay))))

	b.WriteString(components.ContentCard("By category", rows.String(), cw))
	return b.String()
}
