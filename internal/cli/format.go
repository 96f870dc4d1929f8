// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spend/internal/model"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "PHP"

var currency = DefaultCurrency

// SetCurrency sets the ISO 4217 code used by FormatAmount. Unknown codes
// fall back to a plain "CODE 1,234.56" rendering.
func SetCurrency(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	currency = code
}

// Currency returns the active currency code.
func Currency() string {
	return currency
}

// FormatAmount formats an amount in the active currency.
// e.g., 1234.5 -> "$1,234.50" for USD
func FormatAmount(amount float64) string {
	return FormatAmountIn(amount, currency)
}

// FormatAmountIn formats an amount in the given currency.
// Values whose minor units do not fit in int64 use the plain rendering.
func FormatAmountIn(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return code + " " + fmt.Sprint(amount)
	}
	c := money.GetCurrency(code)
	if c == nil {
		return code + " " + formatFixed(amount, 2)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(c.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return c.Code + " " + formatFixed(amount, int32(c.Fraction))
	}
	return money.New(minor.IntPart(), c.Code).Display()
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FormatCompact formats an amount with K/M suffixes for chart labels.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(amount float64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", amount/1_000)
	case abs >= 100:
		return fmt.Sprintf("%.0f", amount)
	default:
		return fmt.Sprintf("%.2f", amount)
	}
}

func formatFixed(amount float64, places int32) string {
	s := model.AmountDecimal(amount).StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	out := groupDigits(whole)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	return groupDigits(strconv.FormatInt(n, 10))
}

// groupDigits inserts thousands separators into a string of digits.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats the change from previous to current with a sign.
func FormatDelta(current, previous float64) string {
	delta := model.AmountDecimal(current).Sub(model.AmountDecimal(previous)).InexactFloat64()
	if delta >= 0 {
		return "+" + FormatAmount(delta)
	}
	return "-" + FormatAmount(-delta)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens s to at most n display cells, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
