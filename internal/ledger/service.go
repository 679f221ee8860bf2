// Package ledger orchestrates every user-facing operation over the
// expense table: mutations, browsing, summaries, dashboard and category
// management. Each operation follows the same cycle: load the full table,
// compute, persist on mutation. The service holds no row state between
// calls; single-writer use is assumed.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// ChangePublisher notifies downstream consumers that the ledger was
// rewritten. Publishing is best effort; a nil publisher disables it.
type ChangePublisher interface {
	PublishLedgerChanged(ctx context.Context, op string, rows int) error
}

type Service struct {
	ledger     storage.LedgerStore
	categories storage.CategoryStore
	budgets    core.Budgets
	publisher  ChangePublisher
}

func NewService(ledger storage.LedgerStore, categories storage.CategoryStore, budgets core.Budgets, publisher ChangePublisher) *Service {
	if budgets == nil {
		budgets = core.DefaultBudgets()
	}
	return &Service{
		ledger:     ledger,
		categories: categories,
		budgets:    budgets,
		publisher:  publisher,
	}
}

// List returns the full ledger in insertion order.
func (s *Service) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return rows, nil
}

// Filtered returns the subset of the ledger matching the filter, in the
// original order.
func (s *Service) Filtered(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.ApplyFilter(rows, f), nil
}

// Add validates and appends one expense, then persists the whole table.
// Amounts must be positive and dates well formed; validation failures
// leave the ledger untouched.
func (s *Service) Add(ctx context.Context, e core.Expense) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	if err := e.Validate(); err != nil {
		return err
	}

	rows, err := s.List(ctx)
	if err != nil {
		return err
	}
	rows = append(rows, e)
	if err := s.ledger.Save(ctx, rows); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		"date", e.Date.String(),
		"amount", e.Amount.String(),
		"category", e.Category)
	s.publishChange(ctx, amqp.OpAdd, len(rows))
	return nil
}

// Edit overwrites the row at the given position. The index refers to the
// current in-memory load and is not stable across external edits of the
// backing file.
func (s *Service) Edit(ctx context.Context, index int, e core.Expense) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	if err := e.Validate(); err != nil {
		return err
	}

	rows, err := s.List(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("edit row %d of %d: %w", index, len(rows), core.ErrNotFound)
	}
	rows[index] = e
	if err := s.ledger.Save(ctx, rows); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated", "index", index)
	s.publishChange(ctx, amqp.OpEdit, len(rows))
	return nil
}

// Delete removes the row at the given position.
func (s *Service) Delete(ctx context.Context, index int) error {
	rows, err := s.List(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("delete row %d of %d: %w", index, len(rows), core.ErrNotFound)
	}
	rows = append(rows[:index], rows[index+1:]...)
	if err := s.ledger.Save(ctx, rows); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "index", index)
	s.publishChange(ctx, amqp.OpDelete, len(rows))
	return nil
}

// UndoLast removes the newest row by insertion order, which is not
// necessarily the most recently deleted one. Returns the removed row.
func (s *Service) UndoLast(ctx context.Context) (core.Expense, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	if len(rows) == 0 {
		return core.Expense{}, core.ErrEmptyLedger
	}
	last := rows[len(rows)-1]
	rows = rows[:len(rows)-1]
	if err := s.ledger.Save(ctx, rows); err != nil {
		return core.Expense{}, fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Last expense undone",
		"date", last.Date.String(),
		"amount", last.Amount.String(),
		"category", last.Category)
	s.publishChange(ctx, amqp.OpUndo, len(rows))
	return last, nil
}

func (s *Service) publishChange(ctx context.Context, op string, rows int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChanged(ctx, op, rows); err != nil {
		// Mutations never fail because a notification could not be sent.
		slog.ErrorContext(ctx, "Failed to publish ledger change", "op", op, "error", err)
	}
}
