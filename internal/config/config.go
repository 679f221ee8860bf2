package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Data backend: file (CSV + JSON), sqlite, or memory
	DataBackend string

	// File backend
	DataDir        string
	LedgerPath     string
	CategoriesPath string
	ReportsDir     string

	// SQLite backend
	SQLiteDBPath string

	// Budgets (optional JSON file; built-in defaults when empty)
	BudgetsFile string

	// AMQP change notifications (optional; empty URL disables)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (optional; empty spreadsheet ID disables)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "file"),

		DataDir:        dataDir,
		LedgerPath:     getEnv("LEDGER_PATH", filepath.Join(dataDir, "expenses.csv")),
		CategoriesPath: getEnv("CATEGORIES_PATH", filepath.Join(dataDir, "categories.json")),
		ReportsDir:     getEnv("REPORTS_DIR", filepath.Join(dataDir, "reports")),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", filepath.Join(dataDir, "spendtrack.db")),

		BudgetsFile: getEnv("BUDGETS_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendtrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changes"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
	}
	return cfg
}

// Validate checks the configuration and returns a combined error listing
// every problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "file":
		if c.LedgerPath == "" {
			errs = append(errs, "ledger path cannot be empty when using file backend")
		}
		if c.CategoriesPath == "" {
			errs = append(errs, "categories path cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "memory":
		// Nothing to validate.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [file sqlite memory]", c.DataBackend))
	}

	if c.BudgetsFile != "" {
		if _, err := os.Stat(c.BudgetsFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("budgets file does not exist: %s", c.BudgetsFile))
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" && c.GoogleSheetName == "" {
		errs = append(errs, "Google sheet name cannot be empty when a spreadsheet ID is provided")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
