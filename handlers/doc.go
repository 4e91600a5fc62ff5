// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for articles and the raffle.

# Handler Types

  - ArticleHandler: Listing, search, view, delete and the JSON API
  - RaffleHandler: Range form and winner polling

Handlers are created via constructor functions:

	articleHandler := handlers.NewArticleHandler(db, cfg, view)
	raffleHandler := handlers.NewRaffleHandler(cfg, view)

# Full Pages and Fragments

Every listing runs the same query and paging, then picks what to render from
the request headers:

	GET /articles                          HX-Request → page without layout
	GET /articles/htmx-index               HX-Target  → that block only
	GET /articles/htmx-index-with-element  HX-Request → bare element
	GET /articles/search                   X-Fragment → that element (default "search")

A page past the last one is a 404. Limits above the configured page size are
capped.

# Raffle

StartPicker renders a div that polls ChooseWinner every PollInterval. Each
poll flips a coin; on heads it draws a uniform winner in [min, max] and
answers 286 so htmx stops polling.
*/
package handlers
