// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /articles", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id, htmx) and completion
(status, duration_ms). WithRequestID assigns the ID and echoes it in the
X-Request-ID response header.

# CSRF

CSRF issues a signed token cookie and rejects POST, PUT, PATCH and DELETE
requests whose X-CSRF-Token header or _csrfToken form field does not match
it. Templates read the token through CSRFToken(r).

# htmx

	middleware.IsHTMX(r)            // HX-Request: true
	middleware.Target(r)            // HX-Target, without '#'
	middleware.Fragment(r, "search") // X-Fragment or the default

StatusStopPolling (286) ends an hx-trigger="every ..." loop.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

CORS opens the JSON API to cross-origin GET requests.
*/
package middleware
