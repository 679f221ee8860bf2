package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 5 {
		t.Fatalf("unexpected date %v", d)
	}

	bads := []string{"", "05.01.2024", "2024-13-01", "2024-01-32", "yesterday"}
	for i, s := range bads {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("case %d expected ErrInvalidDate, got %v", i, err)
		}
	}
}

func TestDateYearMonth(t *testing.T) {
	if got := NewDate(2024, 2, 29).YearMonth(); got != "2024-02" {
		t.Fatalf("expected 2024-02, got %s", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected error for zero, got %v", err)
	}
	if err := (Money{Cents: -500}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected error for negative, got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 1, 5),
		Amount:      Money{Cents: 1250},
		Category:    "Food",
		Description: "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Description may be empty.
	good.Description = ""
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok without description, got %v", err)
	}

	cases := []struct {
		e    Expense
		want error
	}{
		{Expense{Amount: Money{Cents: 1}, Category: "Food"}, ErrInvalidDate},
		{Expense{Date: NewDate(2024, 1, 5), Category: "Food"}, ErrInvalidAmount},
		{Expense{Date: NewDate(2024, 1, 5), Amount: Money{Cents: -5}, Category: "Food"}, ErrInvalidAmount},
		{Expense{Date: NewDate(2024, 1, 5), Amount: Money{Cents: 1}, Category: "  "}, ErrInvalidCategory},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
