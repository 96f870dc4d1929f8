package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"
	"github.com/theirongolddev/spend/internal/tui/components"
)

const chartWidth = 60

var chartCmd = &cobra.Command{
	Use:   "chart [categories|share]",
	Short: "Category comparison or share-of-total chart",
	Long: "categories: horizontal bars sorted by amount with value labels (default)\n" +
		"share:      each category's share of the window total",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"categories", "share"},
	RunE:      runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	kind := "categories"
	if len(args) == 1 {
		kind = args[0]
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	sums, err := s.SummarizeByCategory(cmd.Context(), flagDays)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintf(out, "\n  No expenses in the last %d days!\n", flagDays)
		return nil
	}
	cats := pipeline.RankCategories(sums)

	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(model.AmountDecimal(c.Amount))
	}

	switch kind {
	case "share":
		printTitle(out, fmt.Sprintf("SHARE BY CATEGORY  Last %dd", flagDays))
		fmt.Fprintln(out, components.ShareBars(cats, chartWidth, cli.FormatAmount))
	default:
		printTitle(out, fmt.Sprintf("SPENDING BY CATEGORY  Last %dd", flagDays))
		fmt.Fprintln(out, components.CategoryBars(cats, chartWidth, cli.FormatAmount))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Total: %s\n", cli.FormatAmount(total.InexactFloat64()))
	return nil
}
