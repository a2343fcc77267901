package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scheduler/cmd"
	"scheduler/internal/adapters/out/consul"
	"scheduler/internal/adapters/out/osenv"
	"scheduler/internal/adapters/out/postgres"
	"scheduler/internal/core/application/configsync"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const (
	// exitRestartRequested tells the process manager to start the service
	// again with the new configuration.
	exitRestartRequested = 3

	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}

	env := osenv.Environment{}
	logger := newLogger(os.Getenv("log_level"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := consul.NewConfigStore(getenv("consul_ip", "localhost"), getenv("consul_port", "8500"), logger)
	if err != nil {
		log.Fatalf("Error creating config store client: %v", err)
	}
	syncer := configsync.NewSyncer(store, env, os.Getenv("APP_ENV"), logger)
	if err = syncer.LoadAll(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to load configuration", "error", err)
	}

	configs, err := cmd.LoadConfig(env)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	logger.Info("Connecting to database", "dsn", configs.AppDatabase().Redacted())
	db, err := postgres.Connect(configs.AppDatabase().URL())
	if err != nil {
		log.Fatalf("Error preparing database connection: %v", err)
	}
	defer func() {
		if closeErr := postgres.Close(db); closeErr != nil {
			logger.Error("Failed to close database", "error", closeErr)
		}
	}()

	app := cmd.NewCompositionRoot(configs, db, time.Now().UTC(), logger)
	app.ProvisionAppRole(ctx)
	if err = app.StartScheduler(); err != nil {
		log.Fatalf("Error starting job scheduler: %v", err)
	}

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := net.JoinHostPort("0.0.0.0", configs.HTTPPort)
		logger.Info("HTTP server listening", "address", addr)
		if startErr := server.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		return syncer.WatchAll(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if stopErr := app.Scheduler().Stop(shutdownCtx); stopErr != nil {
			logger.Warn("Job scheduler did not stop cleanly", "error", stopErr)
		}
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	switch {
	case errors.Is(err, configsync.ErrRestartRequested):
		logger.Warn("Configuration changed, restarting", "reason", err.Error())
		stop()
		_ = postgres.Close(db)
		os.Exit(exitRestartRequested)
	case err != nil:
		log.Fatal(err)
	}
	logger.Info("Service stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
