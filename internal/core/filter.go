package core

import "strings"

// FilterAll is the category value that disables category filtering.
const FilterAll = "All"

// Filter describes the optional predicates applied when browsing or
// exporting the ledger. Zero values disable the corresponding predicate;
// active predicates combine with logical AND.
type Filter struct {
	Category string // exact match; "" or "All" disables
	From     Date   // inclusive lower bound; zero disables
	To       Date   // inclusive upper bound; zero disables
	Keyword  string // case-insensitive substring over Description; "" disables
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return !f.hasCategory() && f.From.IsEmpty() && f.To.IsEmpty() && f.Keyword == ""
}

func (f Filter) hasCategory() bool {
	return f.Category != "" && f.Category != FilterAll
}

// Matches reports whether a single expense satisfies every active predicate.
func (f Filter) Matches(e Expense) bool {
	if f.hasCategory() && e.Category != f.Category {
		return false
	}
	if !f.From.IsEmpty() && e.Date.Before(f.From.Time) {
		return false
	}
	if !f.To.IsEmpty() && e.Date.After(f.To.Time) {
		return false
	}
	if f.Keyword != "" &&
		!strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Keyword)) {
		return false
	}
	return true
}

// ApplyFilter returns the subsequence of rows matching the filter, in the
// original relative order. The input slice is never modified.
func ApplyFilter(rows []Expense, f Filter) []Expense {
	out := make([]Expense, 0, len(rows))
	for _, e := range rows {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
