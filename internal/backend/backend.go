package backend

import (
	"fmt"
	"log/slog"

	"paycycle/internal/config"
	"paycycle/internal/storage"
	"paycycle/internal/store"
	"paycycle/internal/store/memory"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Type represents the kind of persistence backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the persistence backend selected by the app config.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	default:
		st := memory.NewFromFiles(cfg.DataDir)
		f.logger.Info("Initialized memory backend", "data_directory", cfg.DataDir)
		return &Result{Store: st, Cleanup: nil}, nil
	}
}
