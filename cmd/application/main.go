package main

import (
	"allegro_sync/config"
	"allegro_sync/internal/allegro/app"
	"allegro_sync/metrics"
	"allegro_sync/pkg/dbconnect/postgres"
	"allegro_sync/pkg/logger"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	var writer io.Writer = os.Stdout
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %s", err)
		}
		defer file.Close()
		writer = file
	}
	_log := logger.NewLogger(writer, "[Main]")
	defer _log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsServer := &http.Server{Addr: cfg.Metrics.Address, Handler: metricsMux()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_log.Error("Metrics server stopped: %s", err)
		}
	}()

	connector := postgres.NewPgConnector(&cfg.Postgres, logger.NewLogger(writer, "[Postgres]"))
	server := app.NewAllegroServer(connector, cfg, writer)

	_log.Log("Started app")
	if err := server.Run(ctx); err != nil {
		_log.Error("Sync failed: %s", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		_log.Error("Metrics server shutdown: %s", err)
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.MetricsHandler())
	return mux
}
