// Package model defines domain types for spend ledger records and reports.
package model

import "time"

// DateLayout is the on-disk date format. Lexicographic order of strings in
// this layout matches chronological order.
const DateLayout = "2006-01-02"

// DefaultCategories is the category list offered by the entry forms when
// the config does not override it.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Bills",
	"Shopping",
	"Entertainment",
	"Health",
	"Other",
}

// Expense is one persisted ledger record.
type Expense struct {
	ID          int64
	Category    string
	Amount      float64
	Date        string // YYYY-MM-DD
	Description string
}

// Time parses the record date in the local zone.
// It returns the zero time if the stored date is not in DateLayout.
func (e Expense) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, e.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate renders t as a ledger date in the local calendar.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
