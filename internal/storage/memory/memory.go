// Package memory provides an in-memory storage backend, used as a test
// double and as the throwaway `memory` data backend.
package memory

import (
	"context"
	"sync"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// Store keeps the ledger and category list in memory. It implements both
// storage ports.
type Store struct {
	mu     sync.Mutex
	rows   []core.Expense
	labels []string
}

func New() *Store {
	return &Store{labels: storage.DefaultCategories()}
}

// NewWith seeds the store with the given rows and labels.
func NewWith(rows []core.Expense, labels []string) *Store {
	s := &Store{}
	s.rows = append(s.rows, rows...)
	if labels == nil {
		labels = storage.DefaultCategories()
	}
	s.labels = append(s.labels, labels...)
	return s
}

func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.rows...), nil
}

func (s *Store) Save(_ context.Context, rows []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]core.Expense(nil), rows...)
	return nil
}

// Categories returns a CategoryStore view over the same store.
func (s *Store) Categories() *CategoryView {
	return &CategoryView{store: s}
}

// CategoryView implements storage.CategoryStore over a Store.
type CategoryView struct {
	store *Store
}

func (v *CategoryView) Load(_ context.Context) ([]string, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return append([]string(nil), v.store.labels...), nil
}

func (v *CategoryView) Save(_ context.Context, labels []string) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	v.store.labels = append([]string(nil), labels...)
	return nil
}
