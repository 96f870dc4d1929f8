package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

// ColorForShare returns the bar color for a category's share of spending:
// dominant categories stand out in warmer colors.
func ColorForShare(share float64) lipgloss.Color {
	t := theme.Active
	switch {
	case share >= 0.5:
		return t.Red
	case share >= 0.3:
		return t.Orange
	case share >= 0.15:
		return t.Yellow
	default:
		return t.Green
	}
}

// ShareBar renders a labeled bar for a 0-1 share with the percentage and
// a trailing value label.
func ShareBar(label string, share float64, value string, labelW, barWidth int) string {
	t := theme.Active

	share = max(0, min(share, 1))
	color := ColorForShare(share)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		" " + bar.ViewAs(share) +
		" " + pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100)) +
		"  " + valueStyle.Render(value)
}

// ShareBars renders a ShareBar per category, sized to fit width.
func ShareBars(cats []model.CategoryTotal, width int, format func(float64) string) string {
	if len(cats) == 0 {
		return ""
	}

	labelW := 0
	valueW := 0
	for _, c := range cats {
		labelW = max(labelW, lipgloss.Width(c.Category))
		valueW = max(valueW, lipgloss.Width(format(c.Amount)))
	}
	labelW = min(labelW, 16)
	// label, space, bar, space, "100.0%", two spaces, value
	barW := max(6, width-labelW-valueW-10)

	lines := make([]string, 0, len(cats))
	for _, c := range cats {
		lines = append(lines, ShareBar(c.Category, c.Share, format(c.Amount), labelW, barW))
	}
	return strings.Join(lines, "\n")
}
