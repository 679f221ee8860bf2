package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date with day granularity. The time-of-day
	// portion is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is a monetary amount in cents.
	Money struct {
		Cents int64
	}

	// Expense is a single ledger row. Rows are identified only by their
	// position in the ledger; there is no stable ID across reloads.
	Expense struct {
		Date        Date
		Amount      Money
		Category    string
		Description string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("expense not found")
	ErrEmptyLedger     = errors.New("ledger is empty")
)

// DateLayout is the textual form used in the CSV ledger and on the wire.
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// YearMonth returns the YYYY-MM month key of the date.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// IsEmpty reports whether the date is unset (used for optional filter bounds).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrInvalidCategory
	}
	// Description is optional.
	return nil
}
