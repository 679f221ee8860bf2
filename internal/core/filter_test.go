package core

import "testing"

func sampleRows() []Expense {
	return []Expense{
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 1000}, Category: "Food", Description: "weekly groceries"},
		{Date: NewDate(2024, 1, 15), Amount: Money{Cents: 500}, Category: "Transport", Description: "bus ticket"},
		{Date: NewDate(2024, 2, 1), Amount: Money{Cents: 2000}, Category: "Food", Description: "restaurant"},
		{Date: NewDate(2024, 2, 10), Amount: Money{Cents: 300}, Category: "Other", Description: ""},
	}
}

func TestFilterNoPredicates(t *testing.T) {
	rows := sampleRows()
	for _, f := range []Filter{{}, {Category: "All"}} {
		got := ApplyFilter(rows, f)
		if len(got) != len(rows) {
			t.Fatalf("expected full ledger, got %d rows", len(got))
		}
		for i := range rows {
			if got[i] != rows[i] {
				t.Fatalf("row %d changed or reordered", i)
			}
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	got := ApplyFilter(sampleRows(), Filter{Category: "Food"})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	for _, e := range got {
		if e.Category != "Food" {
			t.Fatalf("unexpected category %q", e.Category)
		}
	}
}

func TestFilterDateRangeInclusive(t *testing.T) {
	got := ApplyFilter(sampleRows(), Filter{From: NewDate(2024, 1, 15), To: NewDate(2024, 2, 1)})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if !got[0].Date.Equal(NewDate(2024, 1, 15).Time) || !got[1].Date.Equal(NewDate(2024, 2, 1).Time) {
		t.Fatalf("bounds not inclusive: %v", got)
	}
}

func TestFilterKeywordCaseInsensitive(t *testing.T) {
	got := ApplyFilter(sampleRows(), Filter{Keyword: "GROCER"})
	if len(got) != 1 || got[0].Description != "weekly groceries" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestFilterCombinesWithAnd(t *testing.T) {
	f := Filter{
		Category: "Food",
		From:     NewDate(2024, 1, 1),
		To:       NewDate(2024, 12, 31),
		Keyword:  "rest",
	}
	got := ApplyFilter(sampleRows(), f)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	// Each predicate must hold independently.
	e := got[0]
	if !(Filter{Category: f.Category}).Matches(e) ||
		!(Filter{From: f.From, To: f.To}).Matches(e) ||
		!(Filter{Keyword: f.Keyword}).Matches(e) {
		t.Fatalf("combined result does not satisfy each predicate: %v", e)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	got := ApplyFilter(sampleRows(), Filter{From: NewDate(2024, 1, 2)})
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date.Time) {
			t.Fatalf("relative order not preserved")
		}
	}
}
