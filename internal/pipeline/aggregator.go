// Package pipeline computes windows, filters, and aggregates over ledger records.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spend/internal/model"
)

// WindowStart returns the first date of a trailing window of the given
// number of days ending at now. The bound is inclusive.
func WindowStart(now time.Time, days int) string {
	return model.FormatDate(now.AddDate(0, 0, -days))
}

// FilterByDate returns records dated within [since, until]. Empty bounds
// are open.
func FilterByDate(expenses []model.Expense, since, until string) []model.Expense {
	if since == "" && until == "" {
		return expenses
	}

	result := []model.Expense{}
	for _, e := range expenses {
		if since != "" && e.Date < since {
			continue
		}
		if until != "" && e.Date > until {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FilterByCategory returns records whose category contains substr,
// ignoring case.
func FilterByCategory(expenses []model.Expense, substr string) []model.Expense {
	if substr == "" {
		return expenses
	}
	result := []model.Expense{}
	for _, e := range expenses {
		if containsIgnoreCase(e.Category, substr) {
			result = append(result, e)
		}
	}
	return result
}

// Search returns records whose category or description contains query.
func Search(expenses []model.Expense, query string) []model.Expense {
	query = strings.TrimSpace(query)
	if query == "" {
		return expenses
	}
	result := []model.Expense{}
	for _, e := range expenses {
		if containsIgnoreCase(e.Category, query) || containsIgnoreCase(e.Description, query) {
			result = append(result, e)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SumByCategory folds records into a category -> total mapping.
// Only categories that occur in expenses appear in the result.
func SumByCategory(expenses []model.Expense) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(model.AmountDecimal(e.Amount))
	}

	result := make(map[string]float64, len(sums))
	for cat, d := range sums {
		result[cat] = d.InexactFloat64()
	}
	return result
}

// Total sums all record amounts.
func Total(expenses []model.Expense) float64 {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(model.AmountDecimal(e.Amount))
	}
	return sum.InexactFloat64()
}

// CategoryTotals computes per-category totals sorted by amount descending,
// then by name.
func CategoryTotals(expenses []model.Expense) []model.CategoryTotal {
	cats := RankCategories(SumByCategory(expenses))
	counts := make(map[string]int)
	for _, e := range expenses {
		counts[e.Category]++
	}
	for i := range cats {
		cats[i].Count = counts[cats[i].Category]
	}
	return cats
}

// RankCategories turns a category -> total mapping, such as the one the
// store's SummarizeByCategory returns, into shares sorted by amount
// descending, then by name. Count is left zero.
func RankCategories(sums map[string]float64) []model.CategoryTotal {
	total := decimal.Zero
	for _, amount := range sums {
		total = total.Add(model.AmountDecimal(amount))
	}
	t := total.InexactFloat64()

	cats := make([]model.CategoryTotal, 0, len(sums))
	for name, amount := range sums {
		ct := model.CategoryTotal{Category: name, Amount: amount}
		if t > 0 {
			ct.Share = amount / t
		}
		cats = append(cats, ct)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Amount != cats[j].Amount {
			return cats[i].Amount > cats[j].Amount
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// AggregateDays computes per-day totals for records within [since, until].
// Every day in the range is present, zero-filled, most recent first.
func AggregateDays(expenses []model.Expense, since, until time.Time) []model.DailyTotal {
	sinceKey := model.FormatDate(since)
	untilKey := model.FormatDate(until)

	dayMap := make(map[string]*model.DailyTotal)
	sums := make(map[string]decimal.Decimal)

	for _, e := range FilterByDate(expenses, sinceKey, untilKey) {
		ds, ok := dayMap[e.Date]
		if !ok {
			t := e.Time()
			if t.IsZero() {
				continue
			}
			ds = &model.DailyTotal{Date: t}
			dayMap[e.Date] = ds
		}
		ds.Count++
		sums[e.Date] = sums[e.Date].Add(model.AmountDecimal(e.Amount))
	}
	for key, d := range sums {
		dayMap[key].Amount = d.InexactFloat64()
	}

	// Fill in every day in the range so charts show gaps as zeros
	day := startOfDay(since)
	end := startOfDay(until)
	for !day.After(end) {
		key := day.Format(model.DateLayout)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = &model.DailyTotal{Date: day}
		}
		day = day.AddDate(0, 0, 1)
	}

	days := make([]model.DailyTotal, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// Aggregate computes summary statistics for the trailing window of the
// given number of days ending at now.
func Aggregate(expenses []model.Expense, now time.Time, days int) model.SummaryStats {
	filtered := FilterByDate(expenses, WindowStart(now, days), model.FormatDate(now))
	return summarize(filtered, days)
}

// AggregatePrevious computes the same statistics for the window of equal
// length immediately before the current one.
func AggregatePrevious(expenses []model.Expense, now time.Time, days int) model.SummaryStats {
	end := now.AddDate(0, 0, -days-1)
	return Aggregate(expenses, end, days)
}

// Compare returns the current window alongside the previous one.
func Compare(expenses []model.Expense, now time.Time, days int) model.PeriodComparison {
	return model.PeriodComparison{
		Current:  Aggregate(expenses, now, days),
		Previous: AggregatePrevious(expenses, now, days),
	}
}

func summarize(expenses []model.Expense, days int) model.SummaryStats {
	stats := model.SummaryStats{
		Days:       days,
		Count:      len(expenses),
		Total:      Total(expenses),
		Categories: CategoryTotals(expenses),
	}

	active := make(map[string]struct{})
	for _, e := range expenses {
		active[e.Date] = struct{}{}
	}
	stats.ActiveDays = len(active)

	// A window of N days back from today spans N+1 calendar days.
	if span := days + 1; span > 0 {
		stats.PerDay = stats.Total / float64(span)
	}
	if stats.ActiveDays > 0 {
		stats.PerActiveDay = stats.Total / float64(stats.ActiveDays)
	}
	if len(stats.Categories) > 0 {
		stats.TopCategory = stats.Categories[0].Category
	}
	return stats
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
