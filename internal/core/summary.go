package core

import "sort"

type (
	// CategoryTotal is an amount aggregated by category label.
	CategoryTotal struct {
		Category string
		Total    Money
	}

	// DayTotal is an amount aggregated by calendar day.
	DayTotal struct {
		Day   Date
		Total Money
	}

	// MonthTotal is an amount aggregated by YYYY-MM month key.
	MonthTotal struct {
		Month string
		Total Money
	}
)

// SummarizeByCategory sums amounts per category, ordered by descending
// total with category label ascending as tiebreak.
func SummarizeByCategory(rows []Expense) []CategoryTotal {
	sums := make(map[string]int64)
	for _, e := range rows {
		sums[e.Category] += e.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(sums))
	for cat, cents := range sums {
		out = append(out, CategoryTotal{Category: cat, Total: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SummarizeByDay sums amounts per calendar day in chronological order.
func SummarizeByDay(rows []Expense) []DayTotal {
	sums := make(map[Date]int64)
	for _, e := range rows {
		sums[e.Date] += e.Amount.Cents
	}
	out := make([]DayTotal, 0, len(sums))
	for day, cents := range sums {
		out = append(out, DayTotal{Day: day, Total: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day.Time)
	})
	return out
}

// SummarizeByMonth sums amounts per year+month in chronological order.
func SummarizeByMonth(rows []Expense) []MonthTotal {
	sums := make(map[string]int64)
	for _, e := range rows {
		sums[e.Date.YearMonth()] += e.Amount.Cents
	}
	out := make([]MonthTotal, 0, len(sums))
	for month, cents := range sums {
		out = append(out, MonthTotal{Month: month, Total: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// GrandTotal sums all amounts in the ledger.
func GrandTotal(rows []Expense) Money {
	var cents int64
	for _, e := range rows {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}
