package backend

import (
	"fmt"

	"spendtrack/internal/config"
	"spendtrack/internal/log"
	"spendtrack/internal/storage/file"
	"spendtrack/internal/storage/memory"
	"spendtrack/internal/storage/sqlite"
)

// New builds the ledger and category stores for the backend named in
// the application config.
func New(cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBackend)

	backendType := Type(cfg.DataBackend)
	switch backendType {
	case FileBackend:
		logger.Info("using file backend",
			"ledger_path", cfg.LedgerPath,
			"categories_path", cfg.CategoriesPath)
		return &Result{
			Ledger:     file.NewLedgerStore(cfg.LedgerPath),
			Categories: file.NewCategoryStore(cfg.CategoriesPath),
		}, nil

	case SQLiteBackend:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("using sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{
			Ledger:     repo,
			Categories: repo.Categories(),
			Cleanup:    repo.Close,
		}, nil

	case MemoryBackend:
		store := memory.New()
		logger.Info("using memory backend")
		return &Result{
			Ledger:     store,
			Categories: store.Categories(),
		}, nil

	default:
		return nil, fmt.Errorf("invalid backend type %q: must be one of %v", cfg.DataBackend, Types())
	}
}
