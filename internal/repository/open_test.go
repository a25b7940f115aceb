package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mamadbah2/stockbot/internal/config"
	"github.com/mamadbah2/stockbot/internal/repository/memory"
	"github.com/mamadbah2/stockbot/internal/repository/sqlite"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := OpenStore(ctx, config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}, nil)
	if err != nil {
		t.Fatalf("OpenStore(memory) error: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Errorf("store = %T, want *memory.Store", store)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error: %v", err)
	}

	cfg := config.Config{Storage: config.StorageConfig{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "ledger.db"),
	}}
	store, closeFn, err = OpenStore(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("OpenStore(sqlite) error: %v", err)
	}
	if _, ok := store.(*sqlite.Store); !ok {
		t.Errorf("store = %T, want *sqlite.Store", store)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error: %v", err)
	}

	if _, closeFn, err := OpenStore(ctx, config.Config{Storage: config.StorageConfig{Backend: "csv"}}, nil); err == nil || closeFn == nil {
		t.Errorf("OpenStore(csv) error = %v", err)
	}
}
