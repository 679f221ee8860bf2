// Package sqlite implements the storage ports over a SQLite database.
// It keeps the same full-load/full-rewrite contract as the flat-file
// backend: insertion order is the id order, and every save replaces the
// whole table inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements storage.LedgerStore. Rows come back in insertion order.
// Rows that fail date or amount coercion are dropped with a warning, the
// same policy as the CSV backend.
func (r *Repository) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, amount_cents, category, description FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			dateStr     string
			amountCents int64
			category    string
			description string
		)
		if err := rows.Scan(&dateStr, &amountCents, &category, &description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unparseable expense row", "date", dateStr, "error", err)
			continue
		}
		out = append(out, core.Expense{
			Date:        date,
			Amount:      core.Money{Cents: amountCents},
			Category:    category,
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	if out == nil {
		out = []core.Expense{}
	}
	return out, nil
}

// Save implements storage.LedgerStore by replacing the whole table.
func (r *Repository) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	for _, e := range expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (date, amount_cents, category, description) VALUES (?, ?, ?, ?)`,
			e.Date.String(), e.Amount.Cents, e.Category, e.Description)
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Categories returns the CategoryStore view over the same database.
func (r *Repository) Categories() *CategoryRepository {
	return &CategoryRepository{db: r.db}
}

// CategoryRepository implements storage.CategoryStore over the categories
// table.
type CategoryRepository struct {
	db *sql.DB
}

// Load returns labels in insertion order, seeding the default list when
// the table is empty.
func (r *CategoryRepository) Load(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT label FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if len(labels) == 0 {
		defaults := storage.DefaultCategories()
		if err := r.Save(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	return labels, nil
}

// Save replaces the whole label list.
func (r *CategoryRepository) Save(ctx context.Context, labels []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin category save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, label := range labels {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (label) VALUES (?)`, label); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit category save: %w", err)
	}
	return nil
}
