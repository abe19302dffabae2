package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/manacurve/manasim/internal/config"
	"github.com/manacurve/manasim/internal/montecarlo"
	"github.com/manacurve/manasim/internal/repository"
	"github.com/manacurve/manasim/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting manasim server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run persistence is optional; without a database URL results are
	// only streamed back to the client.
	var recorder server.Recorder
	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		runRepo := repository.NewRunRepository(db)
		if err := runRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure database schema", zap.Error(err))
		}
		recorder = runRepo
		logger.Info("run persistence enabled")
	} else {
		logger.Info("no database configured; run persistence disabled")
	}

	driver := montecarlo.NewDriver(logger)
	wsServer := server.New(cfg.Simulation, driver, recorder, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: wsServer.Handler(),
	}

	go func() {
		logger.Info("starting WebSocket server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("WebSocket server error", zap.Error(serveErr))
		}
	}()

	logger.Info("manasim server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
		zap.Int("default_iterations", cfg.Simulation.Iterations),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("manasim server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
