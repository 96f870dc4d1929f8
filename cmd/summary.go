package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending by category for the --days window",
	RunE:  runSummary,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Spending by category over the last 7 days",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return summarize(cmd, 7)
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Spending by category over the last 30 days",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return summarize(cmd, 30)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd, weekCmd, monthCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return summarize(cmd, flagDays)
}

func summarize(cmd *cobra.Command, days int) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	all, err := s.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	cmp := pipeline.Compare(all, now(), days)
	stats, prev := cmp.Current, cmp.Previous
	period := periodName(days)

	if stats.Count == 0 {
		fmt.Fprintf(out, "\n  No expenses in the last %s.\n", period)
		if len(all) == 0 {
			hint(out, "Record one with `spend add`.")
		}
		return nil
	}

	printTitle(out, fmt.Sprintf("SPENDING  Last %dd", days))

	rows := make([][]string, 0, len(stats.Categories)+2)
	for _, c := range stats.Categories {
		rows = append(rows, []string{
			c.Category,
			cli.FormatNumber(int64(c.Count)),
			cli.FormatAmount(c.Amount),
			cli.FormatPercent(c.Share),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total", cli.FormatNumber(int64(stats.Count)), cli.FormatAmount(stats.Total), "100.0%"},
	)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Records", "Amount", "Share"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)

	writeShareBars(out, stats.Categories)
	fmt.Fprintln(out)

	perDay := fmt.Sprintf("%s/day", cli.FormatAmount(stats.PerDay))
	if prev.Total > 0 {
		perDay += fmt.Sprintf("  (%s vs prev %dd)", cli.RenderDelta(stats.PerDay, prev.PerDay), days)
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Per day", perDay},
			{"Per active day", cli.FormatAmount(stats.PerActiveDay)},
			{"Active days", fmt.Sprintf("%d of %d", stats.ActiveDays, days+1)},
			{"Top category", stats.TopCategory},
		},
	}))

	fmt.Fprintln(out)
	hint(out, "You spent %s in the last %s.", cli.FormatAmount(stats.Total), period)
	return nil
}

// writeShareBars prints one bar per category scaled to the largest share.
func writeShareBars(w io.Writer, cats []model.CategoryTotal) {
	if len(cats) == 0 {
		return
	}
	labelW := 0
	for _, c := range cats {
		labelW = max(labelW, lipgloss.Width(c.Category))
	}
	labelW = min(labelW, 16)

	maxShare := cats[0].Share
	var b strings.Builder
	for _, c := range cats {
		b.WriteString(cli.RenderHorizontalBar(
			c.Category, labelW,
			c.Share, maxShare, 30,
			cli.FormatPercent(c.Share),
		))
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}
