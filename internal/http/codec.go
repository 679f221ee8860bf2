package http

import (
	"fmt"
	"net/http"
	"strings"

	"spendtrack/internal/core"
)

// expensePayload is the wire form of a ledger row. Amounts travel as
// decimal strings so clients never deal in cents.
type expensePayload struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

func toPayload(e core.Expense) expensePayload {
	return expensePayload{
		Date:        e.Date.String(),
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Description: e.Description,
	}
}

func toPayloads(rows []core.Expense) []expensePayload {
	out := make([]expensePayload, 0, len(rows))
	for _, e := range rows {
		out = append(out, toPayload(e))
	}
	return out
}

func (p expensePayload) toExpense() (core.Expense, error) {
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("date %q: %w", p.Date, err)
	}
	amount, err := core.ParseMoney(p.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", p.Amount, err)
	}
	return core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    p.Category,
		Description: p.Description,
	}, nil
}

// filterFromQuery builds a filter from category, from, to and q query
// parameters. Absent parameters leave the predicate inactive.
func filterFromQuery(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()
	f := core.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Keyword:  strings.TrimSpace(q.Get("q")),
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, fmt.Errorf("from %q: %w", v, err)
		}
		f.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, fmt.Errorf("to %q: %w", v, err)
		}
		f.To = d
	}
	return f, nil
}
