package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/pipeline"
)

var (
	flagListWindow   bool
	flagListCategory string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded expenses, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagListWindow, "window", "w", false, "Only list the last --days days")
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter to category (substring match)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var expenses []model.Expense
	title := "ALL EXPENSES"
	if flagListWindow {
		expenses, err = s.ListWithinLast(cmd.Context(), flagDays)
		title = fmt.Sprintf("EXPENSES  Last %dd", flagDays)
	} else {
		expenses, err = s.ListAll(cmd.Context())
	}
	if err != nil {
		return err
	}
	if flagListCategory != "" {
		expenses = pipeline.FilterByCategory(expenses, flagListCategory)
	}

	out := cmd.OutOrStdout()
	if len(expenses) == 0 {
		if flagListWindow || flagListCategory != "" {
			fmt.Fprintln(out, "\n  No expenses match.")
		} else {
			fmt.Fprintln(out, "\n  No expenses recorded yet!")
			hint(out, "Record one with `spend add`.")
		}
		return nil
	}

	printTitle(out, title)

	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.Date,
			cli.Truncate(e.Category, 16),
			cli.Truncate(e.Description, 40),
			cli.FormatAmount(e.Amount),
		})
	}
	count := fmt.Sprintf("%d records", len(expenses))
	if n, err := s.Count(cmd.Context()); err == nil && n != len(expenses) {
		count = fmt.Sprintf("%d of %d records", len(expenses), n)
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total", "", "", count, cli.FormatAmount(pipeline.Total(expenses))},
	)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Category", "Description", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))
	return nil
}
