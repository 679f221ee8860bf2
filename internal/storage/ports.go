// Package storage defines the persistence ports of the ledger. Backends
// load the whole data set into memory and rewrite it fully on save; there
// is no incremental persistence.
package storage

import (
	"context"

	"spendtrack/internal/core"
)

type (
	// LedgerStore persists the ordered expense table. Load seeds an empty
	// ledger when the backing store is absent and never fails on rows that
	// cannot be coerced; such rows are dropped with a warning.
	LedgerStore interface {
		Load(ctx context.Context) ([]core.Expense, error)
		Save(ctx context.Context, rows []core.Expense) error
	}

	// CategoryStore persists the ordered category label list, seeding the
	// default list when the backing store is absent.
	CategoryStore interface {
		Load(ctx context.Context) ([]string, error)
		Save(ctx context.Context, labels []string) error
	}
)

// DefaultCategories is the list seeded into an absent category store.
func DefaultCategories() []string {
	return []string{"Food", "Transport", "Bills", "Groceries", "Health", "Other"}
}
