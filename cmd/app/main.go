package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quistberg/ladle/internal/config"
	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/game"
	"github.com/quistberg/ladle/internal/handler"
	"github.com/quistberg/ladle/internal/metrics"
	"github.com/quistberg/ladle/internal/persist"
	"github.com/quistberg/ladle/internal/server"
	"github.com/quistberg/ladle/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	initLogger(cfg)

	tables, err := content.NewLoader().Load(cfg.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load content tables: %v", err)
	}
	slog.Info("Content tables loaded",
		"atoms", len(tables.Atoms),
		"customers", len(tables.Customers),
		"bosses", len(tables.Bosses),
		"artifacts", len(tables.Artifacts))

	bus := event.NewMemoryBus()
	metrics.SubscribeToEvents(bus)

	var repo persist.Repository
	var pool *pgxpool.Pool
	if cfg.PersistenceEnabled() {
		connString := cfg.GetDBConnString()
		if err := persist.Migrate(connString); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		pool, err = persist.NewPool(context.Background(), connString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		repo = persist.NewPostgresRepository(pool)
		slog.Info("Recipe book backed by PostgreSQL", "host", cfg.DBHost)
	} else {
		repo = persist.NewMemoryRepository()
		slog.Info("Recipe book kept in memory")
	}
	persist.SubscribeToEvents(bus, repo)

	manager := game.NewManager(tables, bus, utils.NewRand())

	var pinger handler.Pinger
	if pool != nil {
		pinger = pool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, manager, repo, pinger)

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
