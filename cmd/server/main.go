package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/scheduler"
	"github.com/mamadbah2/stockdesk/internal/server/handlers"
	"github.com/mamadbah2/stockdesk/internal/server/router"
	exportsvc "github.com/mamadbah2/stockdesk/internal/service/export"
	inventorysvc "github.com/mamadbah2/stockdesk/internal/service/inventory"
	reportsvc "github.com/mamadbah2/stockdesk/internal/service/report"
	"github.com/mamadbah2/stockdesk/pkg/clients/alert"
	"github.com/mamadbah2/stockdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewAtLevel(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	inventorySvc := inventorysvc.NewService(mongoRepo, cfg.Inventory.FetchLimit, baseLogger.Named("svc.inventory"))
	reportSvc := reportsvc.NewService(inventorySvc, reportsvc.Options{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		LowStockLimit:     cfg.Inventory.LowStockLimit,
		TopProducts:       cfg.Inventory.TopProducts,
		PriceBins:         cfg.Inventory.PriceBins,
	}, baseLogger.Named("svc.report"))
	exporter := exportsvc.NewService(baseLogger.Named("svc.export"))

	productHandler := handlers.NewProductHandler(inventorySvc, baseLogger.Named("handlers.products"))
	statsHandler := handlers.NewStatsHandler(reportSvc, baseLogger.Named("handlers.stats"))
	exportHandler := handlers.NewExportHandler(inventorySvc, exporter, cfg.Export, baseLogger.Named("handlers.export"))
	engine := router.New(productHandler, statsHandler, exportHandler, baseLogger.Named("router"))

	var alerter alert.Client
	if cfg.Alert.WebhookURL != "" {
		alerter = alert.NewWebhookClient(cfg.Alert)
		baseLogger.Info("low stock webhook alerts enabled")
	}

	var mirror sheets.Mirror
	if cfg.Sheets.Enabled() {
		mirror, err = sheets.NewGoogleSheetMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		baseLogger.Info("google sheets snapshot mirror enabled")
	}

	if cfg.Snapshot.CronSchedule != "" {
		sched, err := scheduler.NewScheduler(*cfg, inventorySvc, exporter, alerter, mirror, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init snapshot scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
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
