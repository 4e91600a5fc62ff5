// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the htmx demo server.

The demo lists generated articles with infinite scroll and live search,
returning HTML fragments to htmx instead of JSON, and runs a small raffle
that polls the server until a winner is drawn.

# Starting the Server

With no configuration the server uses a local SQLite file and seeds it:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run . -p 8080

# Configuration

Flags override environment variables (a .env file is loaded too), which
override the YAML file named by -c or CONFIG_FILE:

  - PORT (-p): Server port (default: 8765)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): DSN or SQLite path (default: htmx-demo.db)
  - CSRF_SECRET (-csrf-secret): Token signing key (random if unset)
  - PAGE_SIZE (-page-size): Maximum articles per page (default: 10)
  - SEED_COUNT, SEED_IF_EMPTY, RESEED_SCHEDULE: Demo data
  - POLL_INTERVAL (-poll-interval): Raffle polling (default: 2s)
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - handlers: Article and raffle handlers choosing full page or fragment
  - views: Embedded templates, layouts, blocks and elements
  - paginate: Page parsing and link building
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, request IDs, CSRF, htmx headers, JSON helpers
  - auth: CSRF token signing
  - db: Schema and article queries
  - seed, scheduler: Demo data generation and periodic reset
  - cliparse: Configuration parsing

See cmd/seed for seeding from the command line.
*/
package main
