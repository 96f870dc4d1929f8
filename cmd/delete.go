package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete an expense by id",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid expense id %q", args[0])
	}

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
	target, ok := findExpense(all, id)
	if !ok {
		fmt.Fprintf(out, "  Nothing to delete: no expense #%d.\n", id)
		return nil
	}

	if !flagDeleteYes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete expense #%d?", id)).
				Description(describe(target)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		)).WithTheme(theme.Active.Huh()).
			WithAccessible(os.Getenv("ACCESSIBLE") != "")

		if err := form.RunWithContext(cmd.Context()); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirm delete: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(out, "  Cancelled.")
			return nil
		}
	}

	if err := s.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Deleted expense #%d (%s)\n", id, describe(target))
	return nil
}

func findExpense(expenses []model.Expense, id int64) (model.Expense, bool) {
	for _, e := range expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}

func describe(e model.Expense) string {
	s := fmt.Sprintf("%s  %s  %s", e.Date, e.Category, cli.FormatAmount(e.Amount))
	if e.Description != "" {
		s += "  " + e.Description
	}
	return s
}
