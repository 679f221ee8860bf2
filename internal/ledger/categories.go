package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
)

// Categories returns the label list in display order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	labels, err := s.categories.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return labels, nil
}

// AddCategory appends a label unless an equal one (case-sensitive) is
// already present; adding an existing label is a no-op.
func (s *Service) AddCategory(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return core.ErrInvalidCategory
	}

	labels, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	for _, l := range labels {
		if l == label {
			return nil
		}
	}
	labels = append(labels, label)
	if err := s.categories.Save(ctx, labels); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}

	slog.InfoContext(ctx, "Category added", "label", label)
	s.publishChange(ctx, amqp.OpCategories, len(labels))
	return nil
}

// DeleteCategory removes a label if present. Removing a missing label is
// a no-op, and historical ledger rows keep referencing the deleted label.
func (s *Service) DeleteCategory(ctx context.Context, label string) error {
	labels, err := s.Categories(ctx)
	if err != nil {
		return err
	}

	remain := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != label {
			remain = append(remain, l)
		}
	}
	if len(remain) == len(labels) {
		return nil
	}
	if err := s.categories.Save(ctx, remain); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", "label", label)
	s.publishChange(ctx, amqp.OpCategories, len(remain))
	return nil
}
