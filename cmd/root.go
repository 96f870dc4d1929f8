// Package cmd implements the spend CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/log"
	"github.com/theirongolddev/spend/internal/store"
	"github.com/theirongolddev/spend/internal/tui/theme"
)

var (
	flagDB       string
	flagDays     int
	flagQuiet    bool
	flagVerbose  bool
	flagCurrency string
)

var (
	cfg    = config.DefaultConfig()
	logger = log.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "spend",
	Short: "Personal expense ledger",
	Long: "Record day-to-day spending in a local SQLite ledger and review it\n" +
		"by category, by day, or in the interactive dashboard.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "f", "", "Ledger database path (default from config or $"+config.EnvDBPath+")")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 30, "Time window in days (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress titles and hints")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Display currency code, e.g. PHP, USD")
}

// prepare loads .env and config, then applies flag > env > config
// precedence to the window, the currency and the logger.
func prepare(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if !cmd.Flags().Changed("days") {
		flagDays = cfg.General.DefaultDays
	}
	if flagDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", flagDays)
	}

	code := config.GetCurrency(cfg)
	if flagCurrency != "" {
		code = strings.ToUpper(flagCurrency)
	}
	cli.SetCurrency(code)

	lc := log.DefaultConfig()
	lc.Output = cmd.ErrOrStderr()
	if flagVerbose {
		lc.Level = slog.LevelDebug
	}
	logger = log.New(lc)
	log.SetDefault(logger)

	theme.SetActive(cfg.Appearance.Theme)

	logger.WithComponent(log.ComponentConfig).Debug("config loaded",
		log.FieldPath, config.Path(),
		log.FieldDays, flagDays,
		"currency", cli.Currency(),
	)
	return nil
}

// dbPath resolves the ledger location: flag, then env, then config.
func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.GetDBPath(cfg)
}

// openStore opens the ledger shared by all commands.
func openStore() (*store.Store, error) {
	path := dbPath()
	s, err := store.Open(path, store.WithLogger(logger), store.WithClock(now))
	if err != nil {
		logger.WithComponent(log.ComponentStore).Debug("open failed",
			log.FieldOperation, log.OpInit, log.FieldPath, path, log.FieldError, err)
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return s, nil
}

// printTitle writes a boxed title unless --quiet is set.
func printTitle(w io.Writer, title string) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(title))
	fmt.Fprintln(w)
}

// hint writes a dimmed follow-up line unless --quiet is set.
func hint(w io.Writer, format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(w, "  "+cli.Muted(fmt.Sprintf(format, args...)))
}

func periodName(days int) string {
	switch days {
	case 1:
		return "day"
	case 7:
		return "week"
	case 30:
		return "month"
	}
	return fmt.Sprintf("%d days", days)
}

// now is the clock used for windows; tests replace it.
var now = time.Now
