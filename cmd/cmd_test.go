package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/model"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// isolate points config, data and clock at a throwaway location.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvCurrency, "USD")

	prev := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prev })
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("spend %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func seed(t *testing.T) {
	t.Helper()
	mustRun(t, "add", "-c", "Food", "-a", "12.50", "-d", "2024-01-14", "--desc", "lunch")
	mustRun(t, "add", "-c", "Food", "-a", "7.25", "-d", "2024-01-15", "--desc", "snack")
	mustRun(t, "add", "-c", "Transport", "-a", "3", "-d", "2024-01-15")
	mustRun(t, "add", "-c", "Bills", "-a", "80", "-d", "2023-10-01", "--desc", "power")
}

func TestAddReportsRecord(t *testing.T) {
	isolate(t)

	out := mustRun(t, "add", "--category", "Food", "--amount", "12,50", "--date", "2024-01-14", "--desc", "lunch")
	if !strings.Contains(out, "Added $12.50 to Food on 2024-01-14 (#1)") {
		t.Fatalf("add output = %q", out)
	}

	out = mustRun(t, "add", "-c", "Transport", "-a", "3")
	if !strings.Contains(out, "on 2024-01-15 (#2)") {
		t.Fatalf("add without date should default to today: %q", out)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want error
	}{
		{[]string{"add", "-c", "Food", "-a", "-4"}, model.ErrInvalidAmount},
		{[]string{"add", "-c", "Food", "-a", "abc"}, model.ErrInvalidAmount},
		{[]string{"add", "-c", "Food", "-a", "4", "-d", "2024-02-30"}, model.ErrInvalidDate},
		{[]string{"add", "-c", "Food", "-a", "1e400"}, model.ErrInvalidAmount},
		{[]string{"add", "-c", "Food", "-a", "1e300"}, model.ErrInvalidAmount},
	}
	for _, tt := range tests {
		if _, err := run(t, tt.args...); !errors.Is(err, tt.want) {
			t.Fatalf("%v: err = %v, want %v", tt.args, err, tt.want)
		}
	}

	out := mustRun(t, "list")
	if !strings.Contains(out, "No expenses recorded yet") {
		t.Fatalf("rejected input reached the ledger: %q", out)
	}
}

func TestLargeAmountsSummarize(t *testing.T) {
	isolate(t)

	mustRun(t, "add", "-c", "Rent", "-a", "1e12")
	mustRun(t, "add", "-c", "Rent", "-a", "1000000000000")

	for _, args := range [][]string{{"summary"}, {"list"}, {"chart"}, {"daily"}} {
		out := mustRun(t, args...)
		if !strings.Contains(out, "$2,000,000,000,000.00") {
			t.Fatalf("%v missing total:\n%s", args, out)
		}
	}
}

func TestListShowsAllNewestFirst(t *testing.T) {
	isolate(t)
	seed(t)

	out := mustRun(t, "list")
	snack := strings.Index(out, "snack")
	lunch := strings.Index(out, "lunch")
	power := strings.Index(out, "power")
	if snack < 0 || lunch < 0 || power < 0 {
		t.Fatalf("list missing records:\n%s", out)
	}
	if !(snack < lunch && lunch < power) {
		t.Fatalf("list not newest first:\n%s", out)
	}
	if !strings.Contains(out, "$102.75") {
		t.Fatalf("list total missing:\n%s", out)
	}
}

func TestListWindowExcludesOldRecords(t *testing.T) {
	isolate(t)
	seed(t)

	out := mustRun(t, "list", "--window", "-n", "7")
	if strings.Contains(out, "power") {
		t.Fatalf("October record listed in 7-day window:\n%s", out)
	}
	if !strings.Contains(out, "$22.75") {
		t.Fatalf("window total missing:\n%s", out)
	}

	out = mustRun(t, "list", "-c", "trans")
	if !strings.Contains(out, "Transport") || strings.Contains(out, "lunch") {
		t.Fatalf("category filter:\n%s", out)
	}
}

func TestWeekSummary(t *testing.T) {
	isolate(t)
	seed(t)

	out := mustRun(t, "week")
	for _, want := range []string{"Last 7d", "Food", "$19.75", "Transport", "$3.00", "$22.75", "last week"} {
		if !strings.Contains(out, want) {
			t.Fatalf("week summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bills") {
		t.Fatalf("October record in week summary:\n%s", out)
	}
	// 2024-01-08 through 2024-01-15, two of them with spending
	if !strings.Contains(out, "2 of 8") {
		t.Fatalf("active days should count every day in the window:\n%s", out)
	}
}

func TestSummaryEmptyWindow(t *testing.T) {
	isolate(t)

	out := mustRun(t)
	if !strings.Contains(out, "No expenses in the last month") {
		t.Fatalf("root on empty ledger = %q", out)
	}
}

func TestDaysDefaultComesFromConfig(t *testing.T) {
	isolate(t)
	c := config.DefaultConfig()
	c.General.DefaultDays = 7
	if err := config.Save(c); err != nil {
		t.Fatal(err)
	}
	seed(t)

	if out := mustRun(t, "summary"); !strings.Contains(out, "Last 7d") {
		t.Fatalf("summary did not use configured window:\n%s", out)
	}
	if out := mustRun(t, "summary", "-n", "120"); !strings.Contains(out, "Bills") {
		t.Fatalf("--days did not override config:\n%s", out)
	}
}

func TestDaysMustBePositive(t *testing.T) {
	isolate(t)
	if _, err := run(t, "summary", "--days", "0"); err == nil {
		t.Fatal("expected error for --days 0")
	}
}

func TestDelete(t *testing.T) {
	isolate(t)
	seed(t)

	out := mustRun(t, "delete", "3", "--yes")
	if !strings.Contains(out, "Deleted expense #3") {
		t.Fatalf("delete output = %q", out)
	}
	if out := mustRun(t, "list"); strings.Contains(out, "Transport") {
		t.Fatalf("deleted record still listed:\n%s", out)
	}

	out = mustRun(t, "delete", "3", "--yes")
	if !strings.Contains(out, "Nothing to delete") {
		t.Fatalf("second delete = %q", out)
	}

	if _, err := run(t, "delete", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestChart(t *testing.T) {
	isolate(t)
	seed(t)

	for _, kind := range []string{"categories", "share"} {
		out := mustRun(t, "chart", kind, "-n", "7")
		if !strings.Contains(out, "Food") || !strings.Contains(out, "Total: $22.75") {
			t.Fatalf("chart %s:\n%s", kind, out)
		}
	}
	if _, err := run(t, "chart", "pie"); err == nil {
		t.Fatal("expected error for unknown chart kind")
	}
}

func TestDaily(t *testing.T) {
	isolate(t)
	seed(t)

	out := mustRun(t, "daily", "-n", "7")
	for _, want := range []string{"2024-01-15", "2024-01-14", "$10.25", "Total:   $22.75"} {
		if !strings.Contains(out, want) {
			t.Fatalf("daily missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2024-01-13") {
		t.Fatalf("empty day listed without --all:\n%s", out)
	}
}

func TestConfigShowsEffectiveValues(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "other.db")

	out := mustRun(t, "config", "--db", db)
	for _, want := range []string{"using defaults", "USD  ($SPEND_CURRENCY)", db + "  (flag)", "Food, Transport"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config missing %q:\n%s", want, out)
		}
	}
}

func TestDBFlagOverridesEnv(t *testing.T) {
	isolate(t)
	envDB := filepath.Join(t.TempDir(), "env.db")
	flagDB := filepath.Join(t.TempDir(), "flag.db")
	t.Setenv(config.EnvDBPath, envDB)

	mustRun(t, "add", "-c", "Food", "-a", "1", "--db", flagDB)
	if _, err := os.Stat(flagDB); err != nil {
		t.Fatalf("flag ledger not created: %v", err)
	}
	if _, err := os.Stat(envDB); !os.IsNotExist(err) {
		t.Fatalf("env ledger touched: %v", err)
	}
}

func TestSetupValuesApply(t *testing.T) {
	c := config.DefaultConfig()
	vals := newSetupValues(c)
	vals.days = "7"
	vals.currency = " usd "
	vals.categories = "Rent, Food,, Fun "
	vals.theme = "tokyo-night"

	if err := vals.apply(&c); err != nil {
		t.Fatal(err)
	}
	if c.General.DefaultDays != 7 || c.Ledger.Currency != "USD" || c.Appearance.Theme != "tokyo-night" {
		t.Fatalf("applied config = %+v", c)
	}
	if got := strings.Join(c.Ledger.Categories, "|"); got != "Rent|Food|Fun" {
		t.Fatalf("categories = %q", got)
	}

	vals.days = "0"
	if err := vals.apply(&c); err == nil {
		t.Fatal("expected error for zero days")
	}
	vals.days = "30"
	vals.currency = "ZZZ"
	if err := vals.apply(&c); err == nil {
		t.Fatal("expected error for unknown currency")
	}
}

func TestSplitCategoriesFallsBack(t *testing.T) {
	if got := splitCategories(" , "); len(got) != len(model.DefaultCategories) {
		t.Fatalf("blank categories = %v, want defaults", got)
	}
}

func TestPeriodName(t *testing.T) {
	tests := map[int]string{1: "day", 7: "week", 30: "month", 90: "90 days"}
	for days, want := range tests {
		if got := periodName(days); got != want {
			t.Fatalf("periodName(%d) = %q, want %q", days, got, want)
		}
	}
}
