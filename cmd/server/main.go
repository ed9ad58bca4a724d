// Package main is the entry point for the portfolio content API.
//
// main stays small: it loads configuration, builds the logger, makes sure
// the database directory exists and hands everything to internal/server.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/portfolio-cms/internal/config"
	"github.com/sakif/portfolio-cms/internal/server"
)

func main() {
	// === 1. CONFIGURATION ===
	// .env is optional; real environment variables take precedence.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	// LOG_LEVEL follows slog's numbering: -4 debug, 0 info, 4 warn, 8 error.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if cfg.Admin.Password == "admin123" && cfg.IsProduction() {
		logger.Warn("ADMIN_PASSWORD is the default; set a real password before exposing this server")
	}

	// === 3. DATABASE DIRECTORY ===
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
