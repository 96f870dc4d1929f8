package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/tui/theme"
)

// StatusKind selects the color of a status message.
type StatusKind int

// Status message kinds.
const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// an optional message in the middle and the ledger info on the right.
func RenderStatusBar(width int, message string, kind StatusKind, info string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	infoStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	msgColor := t.TextPrimary
	switch kind {
	case StatusOK:
		msgColor = t.Green
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor)

	left := hintStyle.Render(" [?]help  [q]uit")
	if message != "" {
		left += "  " + msgStyle.Render(message)
	}
	right := ""
	if info != "" {
		right = infoStyle.Render(info + " ")
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", padding) + right

	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
