package core

import (
	"sort"
	"time"
)

// Budgets maps a category label to its monthly spending threshold.
// Budgets are configuration, not persisted data; categories without an
// entry are never flagged.
type Budgets map[string]Money

// DefaultBudgets returns the built-in monthly thresholds, used when no
// budgets file is configured.
func DefaultBudgets() Budgets {
	return Budgets{
		"Food":      {Cents: 30000},
		"Transport": {Cents: 15000},
		"Bills":     {Cents: 40000},
		"Groceries": {Cents: 25000},
		"Health":    {Cents: 15000},
		"Other":     {Cents: 10000},
	}
}

// BudgetLevel classifies how a category total relates to its threshold.
type BudgetLevel string

const (
	// BudgetOver means the month total exceeds the threshold.
	BudgetOver BudgetLevel = "over"
	// BudgetNear means the month total has reached 80% of the threshold
	// without exceeding it.
	BudgetNear BudgetLevel = "near"
)

// BudgetFlag reports one category whose spending for the checked month is
// over or near its threshold.
type BudgetFlag struct {
	Category  string
	Total     Money
	Threshold Money
	Level     BudgetLevel
}

// CheckBudgets computes per-category totals restricted to the given month
// and flags categories that are over threshold, plus those at 80% or more
// as an advisory tier. Results are ordered by category label. Categories
// absent from the budgets map are ignored.
func CheckBudgets(rows []Expense, year int, month time.Month, budgets Budgets) []BudgetFlag {
	sums := make(map[string]int64)
	for _, e := range rows {
		if e.Date.Year() == year && e.Date.Month() == month {
			sums[e.Category] += e.Amount.Cents
		}
	}

	var flags []BudgetFlag
	for cat, cents := range sums {
		threshold, ok := budgets[cat]
		if !ok {
			continue
		}
		flag := BudgetFlag{
			Category:  cat,
			Total:     Money{Cents: cents},
			Threshold: threshold,
		}
		switch {
		case cents > threshold.Cents:
			flag.Level = BudgetOver
		case cents*10 >= threshold.Cents*8:
			flag.Level = BudgetNear
		default:
			continue
		}
		flags = append(flags, flag)
	}
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].Category < flags[j].Category
	})
	return flags
}
