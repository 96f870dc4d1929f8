package model

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Input validation for the entry front ends. The store itself accepts any
// values; callers run these checks before Insert.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date, want YYYY-MM-DD")
)

// MaxAmount is the largest amount a single record may carry. Larger values
// lose cents once stored as float64 and can overflow summary arithmetic.
var MaxAmount = decimal.New(1, 12)

// ParseAmount parses a positive decimal amount.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Empty,
// non-numeric, zero, negative and above-MaxAmount inputs return
// ErrInvalidAmount. Exponent forms such as 1e3 parse like any other number.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() || d.GreaterThan(MaxAmount) {
		return 0, ErrInvalidAmount
	}
	f := d.InexactFloat64()
	if f <= 0 {
		// underflowed, e.g. 1e-400
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// AmountDecimal converts a stored amount for exact arithmetic. NaN and
// infinities, which only reach the ledger by bypassing ParseAmount,
// count as zero.
func AmountDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ValidateCategory rejects blank category labels.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ParseDate checks a user-supplied date. An empty string is allowed and
// means "today"; anything else must be a real date in DateLayout.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// NewExpense validates raw entry fields and returns a record ready for
// Insert. The returned Date is empty when date is blank.
func NewExpense(category, amount, date, description string) (Expense, error) {
	if err := ValidateCategory(category); err != nil {
		return Expense{}, err
	}
	a, err := ParseAmount(amount)
	if err != nil {
		return Expense{}, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		Category:    strings.TrimSpace(category),
		Amount:      a,
		Date:        d,
		Description: strings.TrimSpace(description),
	}, nil
}
