package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var flagDailyAll bool

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily spending table and chart",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().BoolVar(&flagDailyAll, "all", false, "Include days with no spending in the table")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	expenses, err := s.ListWithinLast(cmd.Context(), flagDays)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Fprintf(out, "\n  No expenses in the last %d days!\n", flagDays)
		return nil
	}

	until := now()
	days := pipeline.AggregateDays(expenses, until.AddDate(0, 0, -flagDays), until)
	stats := pipeline.Aggregate(expenses, until, flagDays)

	printTitle(out, fmt.Sprintf("DAILY SPENDING  Last %dd", flagDays))

	var peak model.DailyTotal
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		if d.Amount > peak.Amount {
			peak = d
		}
		if d.Count == 0 && !flagDailyAll {
			continue
		}
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Count)),
			cli.FormatAmount(d.Amount),
		})
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers:  []string{"Date", "Day", "Records", "Amount"},
		Rows:     rows,
		LeftCols: 2,
	}))
	fmt.Fprintln(out)

	values := components.DailyValues(days)
	chart := components.BarChart(
		values,
		components.DateLabels(days),
		theme.Active.Accent, 72, 10, stats.PerActiveDay,
	)
	fmt.Fprintln(out, chart)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Average: %s per active day · %s/day over %dd\n",
		cli.FormatAmount(stats.PerActiveDay), cli.FormatAmount(stats.PerDay), flagDays)
	fmt.Fprintf(out, "  Total:   %s\n", cli.FormatAmount(stats.Total))
	fmt.Fprintf(out, "  Trend:   %s  peak %s on %s\n",
		cli.RenderSparkline(values), cli.FormatCompact(peak.Amount), peak.Date.Format("Jan 2"))
	return nil
}
