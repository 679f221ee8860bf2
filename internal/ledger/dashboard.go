package ledger

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"spendtrack/internal/core"
)

// recentRows is how many of the newest entries the dashboard shows.
const recentRows = 10

// Dashboard is the aggregate view shown on the main page.
type Dashboard struct {
	Total      core.Money
	Entries    int
	First      core.Date // earliest expense date; zero when ledger is empty
	Last       core.Date // latest expense date; zero when ledger is empty
	Recent     []core.Expense
	ByCategory []core.CategoryTotal
	Monthly    []core.MonthTotal
	Budget     []core.BudgetFlag // flags for the month containing `at`
}

// Dashboard computes the full dashboard for the month containing at.
func (s *Service) Dashboard(ctx context.Context, at time.Time) (Dashboard, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Total:      core.GrandTotal(rows),
		Entries:    len(rows),
		ByCategory: core.SummarizeByCategory(rows),
		Monthly:    core.SummarizeByMonth(rows),
		Budget:     core.CheckBudgets(rows, at.Year(), at.Month(), s.budgets),
	}
	for _, e := range rows {
		if d.First.IsEmpty() || e.Date.Before(d.First.Time) {
			d.First = e.Date
		}
		if d.Last.IsEmpty() || e.Date.After(d.Last.Time) {
			d.Last = e.Date
		}
	}
	start := len(rows) - recentRows
	if start < 0 {
		start = 0
	}
	d.Recent = rows[start:]
	return d, nil
}

// MonthToDate returns the rows of the calendar month containing at, for
// budget review and month-scoped views.
func (s *Service) MonthToDate(ctx context.Context, at time.Time) ([]core.Expense, error) {
	n := now.New(at)
	f := core.Filter{
		From: core.DateOf(n.BeginningOfMonth()),
		To:   core.DateOf(n.EndOfMonth()),
	}
	return s.Filtered(ctx, f)
}

// BudgetFlags runs the budget check over the calendar month containing at.
func (s *Service) BudgetFlags(ctx context.Context, at time.Time) ([]core.BudgetFlag, error) {
	rows, err := s.MonthToDate(ctx, at)
	if err != nil {
		return nil, err
	}
	return core.CheckBudgets(rows, at.Year(), at.Month(), s.budgets), nil
}
