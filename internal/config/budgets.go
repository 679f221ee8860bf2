package config

import (
	"encoding/json"
	"fmt"
	"os"

	"spendtrack/internal/core"
)

// LoadBudgets reads the per-category monthly thresholds. An empty path
// yields the built-in defaults. The file format is a JSON object mapping
// category label to a decimal amount string, e.g. {"Food": "300.00"}.
func LoadBudgets(path string) (core.Budgets, error) {
	if path == "" {
		return core.DefaultBudgets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budgets file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse budgets file: %w", err)
	}

	budgets := make(core.Budgets, len(raw))
	for category, amount := range raw {
		m, err := core.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("budget for %q: %w", category, err)
		}
		budgets[category] = m
	}
	return budgets, nil
}
