package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Default days:  %d\n", cfg.General.DefaultDays)
	fmt.Fprintf(out, "    Ledger:        %s%s\n", dbPath(), source(flagDB != "", config.EnvDBPath))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Ledger]")
	fmt.Fprintf(out, "    Currency:      %s%s\n", cli.Currency(), source(flagCurrency != "", config.EnvCurrency))
	fmt.Fprintf(out, "    Categories:    %s\n", strings.Join(cfg.Ledger.Categories, ", "))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `spend setup` to reconfigure.")
	return nil
}

// source names where an overridden value came from.
func source(fromFlag bool, env string) string {
	switch {
	case fromFlag:
		return "  (flag)"
	case os.Getenv(env) != "":
		return "  ($" + env + ")"
	}
	return ""
}
