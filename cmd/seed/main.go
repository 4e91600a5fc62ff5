// Command seed fills the articles table with generated demo content.
//
//	go run ./cmd/seed -seed-count 100
//	go run ./cmd/seed -reset
//
// It reads the same flags, environment and config file as the server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/db"
	"github.com/danielhkuo/htmx-demo/seed"
)

func main() {
	cfg, reset, err := cliparse.ParseSeedFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cliparse.NewLogger(os.Stderr, cfg))

	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	faker := gofakeit.New(0)
	if reset {
		err = seed.Reset(ctx, dbConn, faker, cfg.SeedCount)
	} else {
		err = seed.Seed(ctx, dbConn, faker, cfg.SeedCount)
	}
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
