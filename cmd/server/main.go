/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the asset inventory engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load environment configuration (.env supported)
  3. Build the zap logger
  4. Initialize SQLite store and depreciation profile
  5. Create API handler, router and snapshot scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides APP_PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for in-memory database
  -env     Path to a .env file (default: .env if present)

ENVIRONMENT:
  APP_PORT, DB_PATH, FISCAL_START_MONTH, LIFESPAN_UNIT,
  NEW_ASSET_WINDOW_DAYS, SNAPSHOT_CRON, LEGACY_API_URL

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the snapshot scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/assets.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/assettrack/asset-engine/api"
	"github.com/assettrack/asset-engine/config"
	"github.com/assettrack/asset-engine/depreciation"
	"github.com/assettrack/asset-engine/registry"
	"github.com/assettrack/asset-engine/store/sqlite"
)

func main() {
	// Flags override environment configuration
	port := flag.String("port", "", "HTTP server port (overrides APP_PORT)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	envFile := flag.String("env", "", "Path to a .env file")
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	profile := depreciation.Profile{
		FiscalStartMonth:   cfg.Depreciation.FiscalStartMonth,
		LifeSpanUnit:       depreciation.LifeSpanUnit(cfg.Depreciation.LifeSpanUnit),
		NewAssetWindowDays: cfg.Depreciation.NewAssetWindowDays,
	}
	if err := profile.Validate(); err != nil {
		logger.Fatal("invalid depreciation configuration", zap.Error(err))
	}

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, profile, logger)
	if cfg.Legacy.BaseURL != "" {
		handler.Registry = registry.NewClient(cfg.Legacy.BaseURL, logger)
		logger.Info("legacy import enabled", zap.String("base_url", cfg.Legacy.BaseURL))
	}

	// Snapshot scheduler
	scheduler := api.NewSnapshotScheduler(store, profile, cfg.Snapshot.CronSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("failed to start snapshot scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Create router and server
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // workbook export can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.String("addr", "http://localhost:"+cfg.Server.Port),
			zap.String("db", cfg.Database.Path),
			zap.Int("fiscal_start_month", profile.FiscalStartMonth))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newLogger builds the production logger with readable timestamps.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("asset-engine")
}
