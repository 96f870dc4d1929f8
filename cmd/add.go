package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var (
	flagAddCategory string
	flagAddAmount   string
	flagAddDate     string
	flagAddDesc     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: "Record an expense. When --category or --amount is missing an\n" +
		"interactive form asks for every field.",
	Example: `  spend add --category Food --amount 12.50 --desc lunch
  spend add -c Transport -a 3 -d 2024-01-02
  spend add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Expense category")
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount, e.g. 12.50")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&flagAddDesc, "desc", "", "Optional description")
	rootCmd.AddCommand(addCmd)
}

// entry holds the raw add inputs, from flags or the form.
type entry struct {
	category    string
	amount      string
	date        string
	description string
}

func (e entry) validate() (model.Expense, error) {
	return model.NewExpense(e.category, e.amount, e.date, e.description)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	in := entry{
		category:    flagAddCategory,
		amount:      flagAddAmount,
		date:        flagAddDate,
		description: flagAddDesc,
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if strings.TrimSpace(in.category) == "" || strings.TrimSpace(in.amount) == "" {
		if in.date == "" {
			in.date = s.Today()
		}
		if err := entryForm(&in, cfg.Ledger.Categories).RunWithContext(cmd.Context()); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "  Cancelled.")
				return nil
			}
			return fmt.Errorf("add form: %w", err)
		}
	}

	e, err := in.validate()
	if err != nil {
		return err
	}

	if e.Date == "" {
		e.Date = s.Today()
	}
	id, err := s.Insert(cmd.Context(), e.Category, e.Amount, e.Date, e.Description)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  Added %s to %s on %s (#%d)\n",
		cli.FormatAmount(e.Amount), e.Category, e.Date, id)
	return nil
}

// entryForm prompts for every field, starting from whatever flags were set.
func entryForm(in *entry, categories []string) *huh.Form {
	options := categories
	if c := strings.TrimSpace(in.category); c != "" && !slices.Contains(options, c) {
		options = append([]string{c}, options...)
	}
	if in.category == "" && len(options) > 0 {
		in.category = options[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(options...)...).
				Value(&in.category),
			huh.NewInput().
				Title(fmt.Sprintf("Amount (%s)", cli.Currency())).
				Placeholder("12.50").
				Validate(func(s string) error {
					_, err := model.ParseAmount(s)
					return err
				}).
				Value(&in.amount),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					return err
				}).
				Value(&in.date),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				CharLimit(120).
				Value(&in.description),
		),
	).WithTheme(theme.Active.Huh()).
		WithAccessible(os.Getenv("ACCESSIBLE") != "")
}
