// Package repository selects the ledger backend named by the configuration.
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/config"
	"github.com/mamadbah2/stockbot/internal/repository/memory"
	"github.com/mamadbah2/stockbot/internal/repository/sheets"
	"github.com/mamadbah2/stockbot/internal/repository/sqlite"
	"github.com/mamadbah2/stockbot/internal/service/accounting"
)

// OpenStore builds the configured store. The returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (accounting.Store, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, noop, err
		}
		store := sheets.NewLedgerStore(repo, logger.Named("repo.ledger"))
		if err := store.EnsureHeaders(ctx); err != nil {
			return nil, noop, fmt.Errorf("prepare sheet tabs: %w", err)
		}
		return store, noop, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.BackendMemory:
		logger.Warn("using in-memory store, records are lost on restart")
		return memory.NewStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
