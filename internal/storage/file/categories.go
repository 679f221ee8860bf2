package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spendtrack/internal/storage"
)

// CategoryStore reads and writes the category label list as a JSON array.
type CategoryStore struct {
	path string
}

func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{path: path}
}

// Load reads the label list. When the file is absent it writes and returns
// the default list. Labels are trimmed; blank entries are skipped.
func (s *CategoryStore) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		defaults := storage.DefaultCategories()
		if err := s.Save(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Save overwrites the persisted list entirely, preserving order.
func (s *CategoryStore) Save(_ context.Context, labels []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write categories file: %w", err)
	}
	return nil
}
