package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/config"
	"github.com/mamadbah2/stockbot/internal/repository"
	"github.com/mamadbah2/stockbot/internal/repository/mongodb"
	"github.com/mamadbah2/stockbot/internal/scheduler"
	"github.com/mamadbah2/stockbot/internal/server/handlers"
	"github.com/mamadbah2/stockbot/internal/server/router"
	"github.com/mamadbah2/stockbot/internal/service/accounting"
	commandsvc "github.com/mamadbah2/stockbot/internal/service/commands"
	reportingsvc "github.com/mamadbah2/stockbot/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/stockbot/internal/service/whatsapp"
	"github.com/mamadbah2/stockbot/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/stockbot/pkg/clients/whatsapp"
	"github.com/mamadbah2/stockbot/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := repository.OpenStore(context.Background(), *cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init ledger store", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			baseLogger.Error("failed to close ledger store", zap.Error(err))
		}
	}()
	baseLogger.Info("ledger store ready", zap.String("backend", cfg.Storage.Backend))

	var archive mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, daily reports will not be archived")
	}

	engine := accounting.NewEngine(store, cfg.Location(), logger.Named(baseLogger, "svc.accounting"))
	reportingSvc := reportingsvc.NewService(engine, archive, cfg.Location(), logger.Named(baseLogger, "svc.reporting"))

	var translator commandsvc.Translator
	if cfg.AI.AnthropicKey != "" {
		translator = anthropic.NewClient(cfg.AI.AnthropicKey, "")
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, natural language processing disabled")
	}
	commandDispatcher := commandsvc.NewService(engine, translator, logger.Named(baseLogger, "svc.commands"))

	whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, logger.Named(baseLogger, "svc.whatsapp"))
	webhookHandler := handlers.NewWebhookHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
	ledgerHandler := handlers.NewLedgerHandler(engine, commandDispatcher, logger.Named(baseLogger, "handlers.api"))
	ginEngine := router.New(webhookHandler, ledgerHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
