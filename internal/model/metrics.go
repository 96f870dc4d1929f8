package model

import "time"

// SummaryStats holds the top-level aggregate for a window of records.
type SummaryStats struct {
	Days       int
	Count      int
	ActiveDays int

	Total        float64
	PerDay       float64 // Total spread over the whole window
	PerActiveDay float64 // Total spread over days with at least one record

	TopCategory string
	Categories  []CategoryTotal
}

// CategoryTotal holds the summed amount for a single category.
type CategoryTotal struct {
	Category string
	Amount   float64
	Count    int
	Share    float64 // 0-1 fraction of the window total
}

// DailyTotal holds the summed amount for a single calendar day.
type DailyTotal struct {
	Date   time.Time
	Amount float64
	Count  int
}

// PeriodComparison holds current and previous window data for delta display.
type PeriodComparison struct {
	Current  SummaryStats
	Previous SummaryStats
}
