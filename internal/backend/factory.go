package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/store"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateLedger implements Factory.CreateLedger
func (f *DefaultFactory) CreateLedger(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case JSONBackend:
		return f.createJSONLedger(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteLedger(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createJSONLedger(ctx context.Context, config Config) (*Result, error) {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	fileStore, err := store.NewFileStore(ctx, dataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}

	f.logger.Info("Initialized json backend",
		"data_dir", dataDir,
		"sample_data", fileStore.ServingSampleData())

	return &Result{
		Ledger:  fileStore,
		Cleanup: fileStore.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteLedger(config Config) (*Result, error) {
	sqliteStore, err := store.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("Initialized sqlite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Ledger:  sqliteStore,
		Cleanup: sqliteStore.Close,
	}, nil
}
