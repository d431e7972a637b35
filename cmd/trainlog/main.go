package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/trainlog/internal/config"
	"github.com/claude/trainlog/internal/mcp"
	"github.com/claude/trainlog/internal/server"
	"github.com/claude/trainlog/internal/storage"
	"github.com/claude/trainlog/internal/workout"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("trainlog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := storage.RunMigrations(cfg.Storage.Path, cfg.Storage.MigrationsDir); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Open database
	ctx := context.Background()
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database opened", "path", cfg.Storage.Path)

	// Load persisted state into the in-memory app
	app := workout.NewApp(db, log)
	report, err := app.Load(ctx)
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}
	log.Info("state loaded",
		"catalog_loaded", report.CatalogLoaded,
		"sessions", report.SessionsLoaded)
	recordCorruptSlots(ctx, db, report, log)

	// Create server
	srv := server.New(app, db, cfg.Auth.APIKey, log)

	mcpSrv := mcp.New(app, Version, log)
	srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// recordCorruptSlots writes an import_logs row for every slot that failed to
// parse at startup. The app already fell back to defaults; the row is the
// durable record that data was dropped.
func recordCorruptSlots(ctx context.Context, db *storage.DB, report workout.LoadReport, log *slog.Logger) {
	for slot, corrupt := range map[string]bool{
		workout.SlotCatalog:  report.CatalogCorrupt,
		workout.SlotSessions: report.SessionsCorrupt,
	} {
		if !corrupt {
			continue
		}
		log.Warn("persisted slot corrupt, using fallback", "slot", slot)
		msg := "corrupt " + slot + " slot discarded at startup"
		rec := storage.ImportLog{
			Source:       "startup",
			Status:       "corrupt",
			ErrorMessage: &msg,
		}
		if err := db.InsertImportLog(ctx, rec); err != nil {
			log.Warn("recording corrupt slot", "slot", slot, "error", err)
		}
	}
}
