// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation and article queries.

# Connecting

Open picks the driver from the configured database type and pings:

	conn, err := db.Open(cfg) // lib/pq for postgres, modernc.org/sqlite for sqlite

# Schema Creation

CreateSchema initializes the articles table for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

	articles(id, title, content, photo_url)

id is assigned by the database (BIGSERIAL / INTEGER AUTOINCREMENT).

# Queries

All queries use $N placeholders, which both drivers accept:

	count, err := db.CountArticles(ctx, conn, q)
	page, err := db.ListArticles(ctx, conn, q)
	a, err := db.GetArticle(ctx, conn, 42)     // ErrNotFound if missing
	err := db.DeleteArticle(ctx, conn, 42)     // ErrNotFound if missing
	err := db.InsertArticles(ctx, conn, batch) // single transaction
	err := db.ReplaceArticles(ctx, conn, batch)

Search is a case-insensitive substring match on title. LIKE wildcards in
the search term are escaped and match literally.
*/
package db
