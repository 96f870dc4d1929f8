package pipeline

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/spend/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func sample() []model.Expense {
	return []model.Expense{
		{ID: 3, Category: "Transport", Amount: 3.00, Date: "2024-01-02"},
		{ID: 2, Category: "Food", Amount: 7.25, Date: "2024-01-02", Description: "snack"},
		{ID: 1, Category: "Food", Amount: 12.50, Date: "2024-01-01", Description: "lunch"},
	}
}

func TestSumByCategory(t *testing.T) {
	got := SumByCategory(sample())
	want := map[string]float64{"Food": 19.75, "Transport": 3.00}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SumByCategory = %v, want %v", got, want)
	}
}

func TestSumByCategory_Empty(t *testing.T) {
	got := SumByCategory(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("SumByCategory(nil) = %v, want empty non-nil map", got)
	}
}

func TestSumByCategory_DecimalExact(t *testing.T) {
	var expenses []model.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, model.Expense{Category: "Coffee", Amount: 0.1, Date: "2024-01-01"})
	}
	if got := SumByCategory(expenses)["Coffee"]; got != 1.0 {
		t.Fatalf("ten 0.1 amounts = %v, want exactly 1", got)
	}
}

func TestTotal_SkipsNonFinite(t *testing.T) {
	expenses := append(sample(),
		model.Expense{Category: "Food", Amount: math.Inf(1), Date: "2024-01-02"},
		model.Expense{Category: "Food", Amount: math.NaN(), Date: "2024-01-02"},
	)
	if got := Total(expenses); got != 22.75 {
		t.Fatalf("Total = %v, want 22.75", got)
	}
	if got := SumByCategory(expenses)["Food"]; got != 19.75 {
		t.Fatalf("Food = %v, want 19.75", got)
	}
	cats := RankCategories(map[string]float64{"Food": math.Inf(1), "Rent": 10})
	if len(cats) != 2 || cats[0].Category != "Food" {
		t.Fatalf("RankCategories = %+v", cats)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(sample()); got != 22.75 {
		t.Fatalf("Total = %v, want 22.75", got)
	}
}

func TestWindowStart(t *testing.T) {
	now := day(t, "2024-03-01").Add(15 * time.Hour)
	if got := WindowStart(now, 7); got != "2024-02-23" {
		t.Fatalf("WindowStart = %q, want 2024-02-23", got)
	}
	if got := WindowStart(now, 1); got != "2024-02-29" {
		t.Fatalf("WindowStart leap = %q, want 2024-02-29", got)
	}
}

func TestFilterByDate_InclusiveBounds(t *testing.T) {
	got := FilterByDate(sample(), "2024-01-02", "2024-01-02")
	if len(got) != 2 {
		t.Fatalf("FilterByDate len = %d, want 2", len(got))
	}
	for _, e := range got {
		if e.Date != "2024-01-02" {
			t.Fatalf("unexpected record %+v", e)
		}
	}

	if got := FilterByDate(sample(), "", ""); len(got) != 3 {
		t.Fatalf("open bounds len = %d, want 3", len(got))
	}
	if got := FilterByDate(sample(), "2025-01-01", ""); len(got) != 0 {
		t.Fatalf("future since len = %d, want 0", len(got))
	}
}

func TestFilterByCategoryAndSearch(t *testing.T) {
	if got := FilterByCategory(sample(), "foo"); len(got) != 2 {
		t.Fatalf("FilterByCategory(foo) len = %d, want 2", len(got))
	}
	if got := Search(sample(), "LUNCH"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Search(LUNCH) = %+v, want record 1", got)
	}
	if got := Search(sample(), "  "); len(got) != 3 {
		t.Fatalf("blank Search len = %d, want 3", len(got))
	}
}

func TestCategoryTotals_SortedWithShare(t *testing.T) {
	cats := CategoryTotals(sample())
	if len(cats) != 2 {
		t.Fatalf("len = %d, want 2", len(cats))
	}
	if cats[0].Category != "Food" || cats[0].Amount != 19.75 || cats[0].Count != 2 {
		t.Fatalf("cats[0] = %+v, want Food 19.75 x2", cats[0])
	}
	if cats[1].Category != "Transport" || cats[1].Count != 1 {
		t.Fatalf("cats[1] = %+v, want Transport x1", cats[1])
	}
	sum := cats[0].Share + cats[1].Share
	if sum < 0.999999 || sum > 1.000001 {
		t.Fatalf("shares sum to %v, want 1", sum)
	}
}

func TestCategoryTotals_TieBreaksByName(t *testing.T) {
	cats := CategoryTotals([]model.Expense{
		{Category: "b", Amount: 5, Date: "2024-01-01"},
		{Category: "a", Amount: 5, Date: "2024-01-01"},
	})
	if cats[0].Category != "a" || cats[1].Category != "b" {
		t.Fatalf("tie order = %s,%s; want a,b", cats[0].Category, cats[1].Category)
	}
}

func TestRankCategories(t *testing.T) {
	cats := RankCategories(map[string]float64{"Transport": 3, "Food": 19.75, "Bills": 3})
	want := []string{"Food", "Bills", "Transport"}
	for i, name := range want {
		if cats[i].Category != name {
			t.Fatalf("cats[%d] = %s, want %s", i, cats[i].Category, name)
		}
	}
	if cats[0].Count != 0 {
		t.Fatalf("count = %d, want 0", cats[0].Count)
	}
	if got := cats[1].Share; got < 0.1164 || got > 0.1166 {
		t.Fatalf("Bills share = %v, want ~0.1165", got)
	}
}

func TestRankCategories_Empty(t *testing.T) {
	if cats := RankCategories(nil); len(cats) != 0 {
		t.Fatalf("cats = %+v, want none", cats)
	}
}

func TestAggregateDays_FillsGaps(t *testing.T) {
	days := AggregateDays(sample(), day(t, "2023-12-30"), day(t, "2024-01-02"))
	if len(days) != 4 {
		t.Fatalf("len = %d, want 4 (Dec 30 - Jan 2)", len(days))
	}
	if got := days[0].Date.Format(model.DateLayout); got != "2024-01-02" {
		t.Fatalf("first day = %s, want most recent 2024-01-02", got)
	}
	if days[0].Amount != 10.25 || days[0].Count != 2 {
		t.Fatalf("Jan 2 = %+v, want 10.25 x2", days[0])
	}
	if days[1].Amount != 12.5 {
		t.Fatalf("Jan 1 = %+v, want 12.5", days[1])
	}
	if days[2].Amount != 0 || days[3].Amount != 0 {
		t.Fatalf("gap days should be zero: %+v %+v", days[2], days[3])
	}
}

func TestAggregate(t *testing.T) {
	now := day(t, "2024-01-02").Add(9 * time.Hour)
	stats := Aggregate(sample(), now, 30)

	if stats.Count != 3 || stats.ActiveDays != 2 {
		t.Fatalf("Count=%d ActiveDays=%d, want 3 and 2", stats.Count, stats.ActiveDays)
	}
	if stats.Total != 22.75 {
		t.Fatalf("Total = %v, want 22.75", stats.Total)
	}
	if stats.TopCategory != "Food" {
		t.Fatalf("TopCategory = %q, want Food", stats.TopCategory)
	}
	if stats.PerActiveDay != 22.75/2 {
		t.Fatalf("PerActiveDay = %v, want %v", stats.PerActiveDay, 22.75/2)
	}
}

func TestCompare_PreviousWindowDoesNotOverlap(t *testing.T) {
	expenses := []model.Expense{
		{Category: "Food", Amount: 10, Date: "2024-01-10"}, // current
		{Category: "Food", Amount: 4, Date: "2024-01-03"},  // current lower bound
		{Category: "Food", Amount: 2, Date: "2024-01-02"},  // previous upper bound
		{Category: "Food", Amount: 1, Date: "2023-12-26"},  // previous lower bound
		{Category: "Food", Amount: 100, Date: "2023-12-25"},
	}
	cmp := Compare(expenses, day(t, "2024-01-10"), 7)
	if cmp.Current.Total != 14 {
		t.Fatalf("Current.Total = %v, want 14", cmp.Current.Total)
	}
	if cmp.Previous.Total != 3 {
		t.Fatalf("Previous.Total = %v, want 3", cmp.Previous.Total)
	}
}
