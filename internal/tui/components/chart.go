package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// BarChart renders a vertical bar chart with a y-axis and x labels. When
// avg is positive, the row containing it is marked on the axis with "┼".
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int, avg float64) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: grow the tick step until the ticks fit
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(1, int(math.Round(ceiling/tickStep)))

	rowsPerTick := max(2, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	avgRow := 0
	if avg > 0 {
		avgRow = max(1, int(math.Round(avg/ceiling*float64(chartH))))
	}

	chartW := max(5, width-yLabelW-1)

	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		values, labels = sampleSeries(values, labels, max(2, (chartW+1)/3))
		n = len(values)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	avgStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		if row == avgRow {
			b.WriteString(avgStyle.Render("┼"))
		} else {
			b.WriteString(axisStyle.Render("│"))
		}

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := max(1, min(int(frac*8), 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n && n > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(placeLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// sampleSeries picks n evenly spaced points, keeping first and last.
func sampleSeries(values []float64, labels []string, n int) ([]float64, []string) {
	src := len(values)
	sampled := make([]float64, n)
	var sampledLabels []string
	if len(labels) == src {
		sampledLabels = make([]string, n)
	}
	for i := range sampled {
		idx := i * (src - 1) / (n - 1)
		sampled[i] = values[idx]
		if sampledLabels != nil {
			sampledLabels[i] = labels[idx]
		}
	}
	return sampled, sampledLabels
}

// placeLabels lays x labels under their bars, skipping any that would
// collide with the previous one. The last label is always attempted.
func placeLabels(labels []string, barW, gap, axisLen int) string {
	n := len(labels)
	buf := []byte(strings.Repeat(" ", axisLen))

	labelStep := max(1, (n*8)/(axisLen+1))
	lastEnd := -1
	put := func(pos int, lbl string) {
		end := pos + len(lbl)
		if end > axisLen {
			pos = axisLen - len(lbl)
			end = axisLen
		}
		if pos <= lastEnd || pos < 0 {
			return
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	for i := 0; i < n-1; i += labelStep {
		put(i*(barW+gap), labels[i])
	}
	put((n-1)*(barW+gap), labels[n-1])

	return strings.TrimRight(string(buf), " ")
}

// DateLabels builds compact x-axis labels for a day series that is sorted
// newest first. Labels come back oldest first: the first label and month
// boundaries show the month, other days show the day number.
func DateLabels(days []model.DailyTotal) []string {
	n := len(days)
	labels := make([]string, n)
	prevMonth := time.Month(0)
	for i := 0; i < n; i++ {
		dt := days[n-1-i].Date
		switch {
		case i == 0 || (dt.Month() != prevMonth && i != n-1):
			labels[i] = dt.Format("Jan")
		default:
			labels[i] = strconv.Itoa(dt.Day())
		}
		prevMonth = dt.Month()
	}
	return labels
}

// DailyValues returns the amounts of a newest-first day series, oldest first.
func DailyValues(days []model.DailyTotal) []float64 {
	n := len(days)
	values := make([]float64, n)
	for i, d := range days {
		values[n-1-i] = d.Amount
	}
	return values
}

// CategoryBars renders one horizontal bar per category, longest first,
// each in its own series color and followed by its formatted amount.
func CategoryBars(cats []model.CategoryTotal, width int, format func(float64) string) string {
	if len(cats) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	valueW := 0
	maxVal := 0.0
	for _, c := range cats {
		labelW = max(labelW, lipgloss.Width(c.Category))
		valueW = max(valueW, lipgloss.Width(format(c.Amount)))
		maxVal = math.Max(maxVal, c.Amount)
	}
	labelW = min(labelW, 16)
	barMax := max(4, width-labelW-valueW-2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(labelW)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	lines := make([]string, 0, len(cats))
	for i, c := range cats {
		n := 0
		if maxVal > 0 && c.Amount > 0 {
			n = max(1, int(c.Amount/maxVal*float64(barMax)))
		}
		bar := lipgloss.NewStyle().Foreground(t.SeriesColor(i)).Render(strings.Repeat("█", n))
		lines = append(lines,
			labelStyle.Render(truncate(c.Category, labelW))+" "+bar+" "+valueStyle.Render(format(c.Amount)))
	}
	return strings.Join(lines, "\n")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
