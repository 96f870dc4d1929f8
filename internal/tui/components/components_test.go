package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for total := 10; total < 40; total++ {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	tallLines := len(strings.Split(tallCard, "\n"))
	joined := CardRow([]string{tallCard, shortCard})

	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Fatalf("joined height = %d, want %d", got, tallLines)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Total", Value: "₱22.75"},
		{Label: "Per day", Value: "₱0.73", Delta: "+₱0.10", Up: true},
		{Label: "Top", Value: "Food"},
	}, 60)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Fatalf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestTabAtWidthsAreConsistent(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 200)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d bar width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('e') != TabExpenses || TabIdxByKey('a') != TabAdd ||
		TabIdxByKey('s') != TabSummary || TabIdxByKey('c') != TabCharts {
		t.Fatal("tab keys do not map to tab constants")
	}
	if TabIdxByKey('z') != -1 {
		t.Fatal("unknown key should return -1")
	}
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(80, "Saved #3", StatusOK, "12 records")
	if w := lipgloss.Width(bar); w != 80 {
		t.Fatalf("status bar width = %d, want 80", w)
	}
	if !strings.Contains(bar, "Saved #3") || !strings.Contains(bar, "12 records") {
		t.Fatalf("status bar missing text: %q", bar)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{5, 1},
		{12, 2},
		{40, 5},
		{1000, 200},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0.5:     "0.50",
		20:      "20",
		2000:    "2k",
		2500:    "2.5k",
		3000000: "3M",
	}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, "#ffffff", 10, 2, 0)
	if strings.Contains(out, "\n") {
		t.Fatalf("narrow chart should be a single sparkline line, got %q", out)
	}
}

func TestBarChartMarksAverage(t *testing.T) {
	out := BarChart([]float64{10, 20, 30}, []string{"Jan", "2", "3"}, "#ffffff", 40, 10, 20)
	if !strings.Contains(out, "┼") {
		t.Fatalf("average marker missing:\n%s", out)
	}
	if !strings.Contains(out, "Jan") {
		t.Fatalf("x labels missing:\n%s", out)
	}
}

func TestDateLabels(t *testing.T) {
	var days []model.DailyTotal
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.Local)
	for i := 3; i >= 0; i-- {
		days = append(days, model.DailyTotal{Date: start.AddDate(0, 0, i)})
	}
	got := DateLabels(days)
	want := []string{"Jan", "31", "Feb", "2"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("DateLabels = %v, want %v", got, want)
	}
}

func TestDailyValuesOldestFirst(t *testing.T) {
	days := []model.DailyTotal{{Amount: 3}, {Amount: 2}, {Amount: 1}}
	got := DailyValues(days)
	if got[0] != 1 || got[2] != 3 {
		t.Fatalf("DailyValues = %v, want oldest first", got)
	}
}

func TestCategoryBarsLongestFirstRow(t *testing.T) {
	cats := []model.CategoryTotal{
		{Category: "Food", Amount: 20},
		{Category: "Transport", Amount: 5},
	}
	out := CategoryBars(cats, 40, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Count(lines[0], "█") <= strings.Count(lines[1], "█") {
		t.Fatalf("larger category should have the longer bar:\n%s", out)
	}
	if !strings.HasSuffix(lines[1], "5.00") {
		t.Fatalf("value label missing: %q", lines[1])
	}
}

func TestColorForShare(t *testing.T) {
	th := theme.Active
	if ColorForShare(0.6) != th.Red || ColorForShare(0.05) != th.Green {
		t.Fatal("unexpected share colors")
	}
}

func TestShareBarsOneLinePerCategory(t *testing.T) {
	cats := []model.CategoryTotal{
		{Category: "Food", Amount: 19.75, Share: 0.868},
		{Category: "Transport", Amount: 3, Share: 0.132},
	}
	out := ShareBars(cats, 60, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "86.8%") {
		t.Fatalf("share percentage missing: %q", lines[0])
	}
}
