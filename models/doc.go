// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and response types shared by the server.

# Domain Types

Article is the only persisted entity:

	type Article struct {
		ID       int64
		Title    string
		Content  string
		PhotoURL string
	}

ArticleQuery carries the filter, ordering and window of a listing:

	q := models.ArticleQuery{Search: "foo", Sort: models.SortTitle, Limit: 10}

RaffleRange is the transient {min, max} pair submitted to the raffle. It is
never stored.

# Response Types

The JSON listing endpoint returns ArticleListResponse, which pairs the
articles with PagingResponse metadata:

	{
	  "articles": [...],
	  "paging": {"page": 1, "limit": 10, "count": 100, "page_count": 10, ...}
	}

Errors on JSON routes use ErrorResponse:

	{"error": "Not Found", "message": "Article not found"}
*/
package models
