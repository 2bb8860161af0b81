package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fortuna/courtside/internal/api/rest"
	"github.com/fortuna/courtside/internal/api/websocket"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/ingest/nba"
	"github.com/fortuna/courtside/internal/service"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("starting service", "service", serviceName, "version", serviceVersion)

	// Wire the core: directory, upstream client, services.
	teams := nba.NewTeamDirectory()
	client := nba.NewClient(cfg.Upstream.LiveBaseURL, cfg.Upstream.StatsBaseURL, logger)
	games := service.NewGameService(client, teams, logger)
	analytics := service.NewAnalyticsService()

	restServer := rest.NewServer(cfg.Server.RESTPort, games, analytics, logger)
	go func() {
		logger.Info("rest server listening", "port", cfg.Server.RESTPort)
		if err := restServer.Start(); err != nil {
			logger.Error("rest server stopped", "error", err)
		}
	}()

	wsServer := websocket.NewServer(games, cfg.PollInterval, logger)
	go func() {
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			logger.Error("websocket server stopped", "error", err)
		}
	}()

	logger.Info("service started",
		"rest_port", cfg.Server.RESTPort,
		"ws_port", cfg.Server.WSPort,
		"poll_interval", cfg.PollInterval,
	)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("rest server shutdown error", "error", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("websocket server shutdown error", "error", err)
	}

	logger.Info("service stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
