// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the htmx demo.

# Route Registration

NewRouter parses the templates and returns the mux wrapped with request IDs
and CSRF protection:

	handler, err := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health - 200 "OK" when the database answers a ping

Articles:

	GET  /articles                          - Infinite scroll list
	GET  /articles/htmx-index               - Block selected by HX-Target
	GET  /articles/htmx-index-with-element  - Bare list element
	GET  /articles/search?q=                - Searchable table
	GET  /articles/{id}                     - Single article
	POST /articles/{id}/delete              - Delete (CSRF)
	GET  /api/articles                      - JSON listing (CORS)

Raffle:

	GET  /raffle                - Range form
	POST /raffle/start-picker   - Start polling (CSRF)
	GET  /raffle/choose-winner  - One draw; 286 when a winner is picked

GET / redirects to /articles and /static/ serves the embedded stylesheets.
*/
package router
