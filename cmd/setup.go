package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard's bound fields.
type setupValues struct {
	days       string
	currency   string
	categories string
	theme      string
	dbPath     string
}

func newSetupValues(c config.Config) *setupValues {
	return &setupValues{
		days:       strconv.Itoa(c.General.DefaultDays),
		currency:   c.Ledger.Currency,
		categories: strings.Join(c.Ledger.Categories, ", "),
		theme:      c.Appearance.Theme,
		dbPath:     c.General.DBPath,
	}
}

// apply copies the wizard answers onto c.
func (v *setupValues) apply(c *config.Config) error {
	days, err := strconv.Atoi(strings.TrimSpace(v.days))
	if err != nil || days < 1 {
		return fmt.Errorf("default days must be a positive number, got %q", v.days)
	}
	if err := validateCurrency(v.currency); err != nil {
		return err
	}

	c.General.DefaultDays = days
	c.General.DBPath = strings.TrimSpace(v.dbPath)
	c.Ledger.Currency = strings.ToUpper(strings.TrimSpace(v.currency))
	c.Ledger.Categories = splitCategories(v.categories)
	c.Appearance.Theme = v.theme
	return nil
}

func validateCurrency(code string) error {
	if money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

func splitCategories(s string) []string {
	var cats []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return append([]string(nil), model.DefaultCategories...)
	}
	return cats
}

func runSetup(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	vals := newSetupValues(cfg)

	dayOpts := []huh.Option[string]{
		huh.NewOption("7 days", "7"),
		huh.NewOption("30 days", "30"),
		huh.NewOption("90 days", "90"),
	}
	if vals.days != "7" && vals.days != "30" && vals.days != "90" {
		dayOpts = append(dayOpts, huh.NewOption(vals.days+" days (current)", vals.days))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spend").
				Description("Answers are saved to "+config.Path()),
			huh.NewSelect[string]().
				Title("Default time range").
				Options(dayOpts...).
				Value(&vals.days),
			huh.NewInput().
				Title("Currency").
				Description("ISO 4217 code used to display amounts").
				Validate(validateCurrency).
				Value(&vals.currency),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Categories").
				Description("Comma separated, first is the form default").
				Lines(3).
				Value(&vals.categories),
			huh.NewInput().
				Title("Ledger path").
				Description("Blank for "+config.DefaultDBPath()).
				Value(&vals.dbPath),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.theme),
		),
	).WithTheme(theme.Active.Huh()).
		WithAccessible(os.Getenv("ACCESSIBLE") != "")

	if err := form.RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	next := cfg
	if err := vals.apply(&next); err != nil {
		return err
	}
	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintln(out, "  Run `spend setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
