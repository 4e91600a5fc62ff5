// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/htmx-demo/middleware"
	"github.com/danielhkuo/htmx-demo/views"
)

// page carries what every layout needs.
type page struct {
	CSRFToken string
	Title     string
}

func newPage(r *http.Request, title string) page {
	return page{CSRFToken: middleware.CSRFToken(r), Title: title}
}

type errorPage struct {
	page
	Message string
}

// renderError answers htmx requests with a fragment and everything else with
// the full error page.
func renderError(w http.ResponseWriter, r *http.Request, view *views.Renderer, status int, message string) {
	if middleware.IsHTMX(r) {
		middleware.HTMLError(w, status, message)
		return
	}

	data := errorPage{page: newPage(r, http.StatusText(status)), Message: message}
	err := view.Page(w, status, views.LayoutClassic, "errors/error", data)
	switch {
	case errors.Is(err, views.ErrWrite):
		slog.Warn("failed to write error page", "error", err)
	case err != nil:
		slog.Error("failed to render error page", "error", err)
		middleware.HTMLError(w, status, message)
	}
}

// checkRender logs a failed render. Renders are buffered, so a template
// failure has written nothing yet and still gets a generic error; a failed
// write already sent its status and is only logged.
func checkRender(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, views.ErrWrite) {
		slog.Warn("failed to write response", "error", err)
		return
	}
	slog.Error("failed to render template", "error", err)
	middleware.HTMLError(w, http.StatusInternalServerError, "Failed to render page")
}
