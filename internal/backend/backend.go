package backend

import (
	"spendtrack/internal/storage"
)

// Type selects which persistence layer backs the ledger.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the backend type is one we can build.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{FileBackend, SQLiteBackend, MemoryBackend}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the stores produced by the factory with an optional
// cleanup function.
type Result struct {
	Ledger     storage.LedgerStore
	Categories storage.CategoryStore
	Cleanup    CleanupFunc
}
