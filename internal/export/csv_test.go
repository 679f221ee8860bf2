package export

import (
	"strings"
	"testing"
	"time"

	"spendtrack/internal/core"
)

func TestCSV(t *testing.T) {
	rows := []core.Expense{
		{Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 1250}, Category: "Food", Description: "lunch"},
	}
	data, err := CSV(rows)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "Date,Amount,Category,Description\n2024-01-05,12.50,Food,lunch\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}

func TestCSVEmptySubset(t *testing.T) {
	data, err := CSV(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "Date,Amount,Category,Description" {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)
	if got := Filename("view", at); got != "expenses_view_20240105_153000.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := Filename("all", at); got != "expenses_all_20240105_153000.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
