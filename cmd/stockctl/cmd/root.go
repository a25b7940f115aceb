// Package cmd provides the stockctl commands.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/config"
	"github.com/mamadbah2/stockbot/internal/repository"
	"github.com/mamadbah2/stockbot/internal/service/accounting"
	"github.com/mamadbah2/stockbot/pkg/logger"
)

var (
	envFile    string
	backend    string
	sqlitePath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Run bookkeeping commands against the stock ledger",
	Long: `stockctl runs the same commands the WhatsApp bot understands directly
against the configured ledger, and prints the daily report.

The SQLite backend is used unless STORAGE_BACKEND or --backend says otherwise.

Example:
  stockctl exec "buy | tshirt | 10 | 50"
  stockctl exec sell "|" tshirt "|" 4 "|" 80
  stockctl report`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "ledger backend: sqlite, sheets or memory")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database path (overrides SQLITE_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
}

// session is the ledger opened for one command invocation.
type session struct {
	cfg    *config.Config
	engine *accounting.Engine
	logger *zap.Logger
	close  func() error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLocal(envFile, backend)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if sqlitePath != "" {
		cfg.Storage.SQLitePath = sqlitePath
	}
	return cfg, nil
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if debug {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := repository.OpenStore(ctx, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s ledger: %w", cfg.Storage.Backend, err)
	}

	return &session{
		cfg:    cfg,
		engine: accounting.NewEngine(store, cfg.Location(), log.Named("svc.accounting")),
		logger: log,
		close: func() error {
			_ = log.Sync()
			return closeStore()
		},
	}, nil
}
