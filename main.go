package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/db"
	"github.com/danielhkuo/htmx-demo/router"
	"github.com/danielhkuo/htmx-demo/scheduler"
	"github.com/danielhkuo/htmx-demo/seed"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cliparse.NewLogger(os.Stderr, cfg))

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	faker := gofakeit.New(0)
	if cfg.SeedIfEmpty {
		if _, err := seed.SeedIfEmpty(context.Background(), dbConn, faker, cfg.SeedCount); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// Optional reseed job for long-running demos
	var reseed *scheduler.Scheduler
	if cfg.ReseedSchedule != "" {
		reseed, err = scheduler.New(cfg.ReseedSchedule, func(ctx context.Context) error {
			return seed.Reset(ctx, dbConn, faker, cfg.SeedCount)
		})
		if err != nil {
			slog.Error("invalid reseed schedule", "error", err)
			os.Exit(1)
		}
		reseed.Start()
		slog.Info("Reseed scheduled", "schedule", cfg.ReseedSchedule)
	}

	// Create router
	handler, err := router.NewRouter(dbConn, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		if reseed != nil {
			reseed.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
