// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/htmx-demo/models"
)

// ErrNotFound is returned when an article does not exist.
var ErrNotFound = errors.New("not found")

var sortColumns = map[string]string{
	models.SortID:       "id",
	models.SortTitle:    "title",
	models.SortPhotoURL: "photo_url",
}

// likePattern turns a search term into a substring pattern where LIKE
// wildcards in the term match literally. Case folding happens in SQL so both
// sides go through the same LOWER.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func whereClause(q models.ArticleQuery) (string, []any) {
	if q.Search == "" {
		return "", nil
	}
	return ` WHERE LOWER(title) LIKE LOWER($1) ESCAPE '\'`, []any{likePattern(q.Search)}
}

func orderClause(q models.ArticleQuery) string {
	col, ok := sortColumns[q.Sort]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if q.Direction == models.DirectionDesc {
		dir = "DESC"
	}
	if col == "id" {
		return " ORDER BY id " + dir
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
}

// CountArticles returns how many articles match the query's search filter.
func CountArticles(ctx context.Context, db *sql.DB, q models.ArticleQuery) (int, error) {
	where, args := whereClause(q)

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// ListArticles returns one window of articles matching the query.
func ListArticles(ctx context.Context, db *sql.DB, q models.ArticleQuery) ([]models.Article, error) {
	where, args := whereClause(q)
	n := len(args)
	query := "SELECT id, title, content, photo_url FROM articles" + where + orderClause(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// GetArticle returns a single article by ID.
func GetArticle(ctx context.Context, db *sql.DB, id int64) (models.Article, error) {
	var a models.Article
	err := db.QueryRowContext(ctx, `
		SELECT id, title, content, photo_url
		FROM articles
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.Content, &a.PhotoURL)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, ErrNotFound
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("failed to query article: %w", err)
	}
	return a, nil
}

// DeleteArticle removes an article, returning ErrNotFound if it did not exist.
func DeleteArticle(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertArticles writes all articles in one transaction. IDs on the input
// are ignored; the database assigns them.
func InsertArticles(ctx context.Context, db *sql.DB, articles []models.Article) error {
	return writeArticles(ctx, db, articles, false)
}

// ReplaceArticles empties the table and inserts articles in one transaction.
func ReplaceArticles(ctx context.Context, db *sql.DB, articles []models.Article) error {
	return writeArticles(ctx, db, articles, true)
}

func writeArticles(ctx context.Context, db *sql.DB, articles []models.Article, replace bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM articles"); err != nil {
			return fmt.Errorf("failed to clear articles: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (title, content, photo_url)
		VALUES ($1, $2, $3)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx, a.Title, a.Content, a.PhotoURL); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
