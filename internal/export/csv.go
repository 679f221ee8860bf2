// Package export renders an arbitrary in-memory expense subset as CSV
// bytes, using the same tabular form as the ledger file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"spendtrack/internal/core"
)

// CSV returns the CSV representation of the given rows, header included.
// The subset may be filtered or the full ledger; no file is touched.
func CSV(rows []core.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Amount", "Category", "Description"}); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}
	for _, e := range rows {
		rec := []string{e.Date.String(), e.Amount.String(), e.Category, e.Description}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds a timestamped download name such as
// "expenses_view_20240105_153000.csv". Prefix is "view" or "all".
func Filename(prefix string, at time.Time) string {
	return fmt.Sprintf("expenses_%s_%s.csv", prefix, at.Format("20060102_150405"))
}

// EnsureReportsDir creates the reports directory if absent. The directory
// is a reserved drop location for exported files; nothing else uses it.
func EnsureReportsDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}
	return nil
}
