// Package file implements the flat-file storage backend: a CSV ledger and
// a JSON category list, both rewritten fully on every save.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spendtrack/internal/core"
)

// Header columns of the CSV ledger, in persisted order.
var ledgerColumns = []string{"Date", "Amount", "Category", "Description"}

// LedgerStore reads and writes the expense table as a CSV file.
type LedgerStore struct {
	path string
}

func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads all expenses from the CSV file. A missing or empty file is
// seeded with the header row and yields an empty ledger. Rows whose amount
// or date cannot be coerced are dropped with a warning; Load fails only on
// I/O or malformed-CSV errors.
func (s *LedgerStore) Load(ctx context.Context) ([]core.Expense, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows, missing cells read as empty
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	if len(records) == 0 {
		return []core.Expense{}, nil
	}

	cols := columnIndex(records[0])
	rows := make([]core.Expense, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := parseRow(rec, cols)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unparseable ledger row",
				"path", s.path, "line", i+2, "error", err)
			continue
		}
		rows = append(rows, e)
	}
	return rows, nil
}

// Save serializes the full table back to the CSV file, overwriting it.
// Column order is fixed; a crash mid-write can corrupt the file, which is
// an accepted limitation of the flat-file backend.
func (s *LedgerStore) Save(ctx context.Context, rows []core.Expense) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerColumns); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, e := range rows {
		rec := []string{e.Date.String(), e.Amount.String(), e.Category, e.Description}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger file: %w", err)
	}
	return nil
}

// ensure creates the data directory and seeds an empty ledger with the
// header row when the file is absent or empty.
func (s *LedgerStore) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	fi, err := os.Stat(s.path)
	if err == nil && fi.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger file: %w", err)
	}
	return s.Save(context.Background(), nil)
}

// columnIndex maps header names to positions so externally edited files
// with reordered columns still load.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func cell(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func parseRow(rec []string, cols map[string]int) (core.Expense, error) {
	date, err := core.ParseDate(cell(rec, cols, "Date"))
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseMoney(cell(rec, cols, "Amount"))
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    strings.TrimSpace(cell(rec, cols, "Category")),
		Description: cell(rec, cols, "Description"),
	}, nil
}
