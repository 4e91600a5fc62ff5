// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/handlers"
	"github.com/danielhkuo/htmx-demo/middleware"
	"github.com/danielhkuo/htmx-demo/views"
)

// NewRouter registers every route and wraps the mux with request IDs and
// CSRF protection.
func NewRouter(db *sql.DB, cfg cliparse.Config) (http.Handler, error) {
	view, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	articleHandler := handlers.NewArticleHandler(db, cfg, view)
	raffleHandler := handlers.NewRaffleHandler(cfg, view)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles", http.StatusFound)
	})

	// Articles
	mux.HandleFunc("GET /articles", middleware.WithLogging(articleHandler.Index))
	mux.HandleFunc("GET /articles/htmx-index", middleware.WithLogging(articleHandler.HTMXIndex))
	mux.HandleFunc("GET /articles/htmx-index-with-element", middleware.WithLogging(articleHandler.HTMXIndexWithElement))
	mux.HandleFunc("GET /articles/search", middleware.WithLogging(articleHandler.Search))
	mux.HandleFunc("GET /articles/{id}", middleware.WithLogging(articleHandler.View))
	mux.HandleFunc("POST /articles/{id}/delete", middleware.WithLogging(articleHandler.Delete))

	// JSON API
	api := middleware.CORS(middleware.WithLogging(articleHandler.ListJSON))
	mux.Handle("GET /api/articles", api)
	mux.Handle("OPTIONS /api/articles", api)

	// Raffle
	mux.HandleFunc("GET /raffle", middleware.WithLogging(raffleHandler.Index))
	mux.HandleFunc("POST /raffle/start-picker", middleware.WithLogging(raffleHandler.StartPicker))
	mux.HandleFunc("GET /raffle/choose-winner", middleware.WithLogging(raffleHandler.ChooseWinner))

	// Stylesheets
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(views.Static())))

	return middleware.WithRequestID(middleware.CSRF(cfg.CSRFSecret)(mux)), nil
}
