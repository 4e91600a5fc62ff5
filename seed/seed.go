// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"

	"github.com/danielhkuo/htmx-demo/db"
	"github.com/danielhkuo/htmx-demo/models"
)

const (
	paragraphsPerArticle  = 5
	sentencesPerParagraph = 4
	wordsPerSentence      = 10
	titleWords            = 6
)

// PhotoURL is the placeholder image for the i-th generated article.
func PhotoURL(i int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/600", i)
}

// Articles generates n articles. The same faker seed yields the same
// articles.
func Articles(f *gofakeit.Faker, n int) []models.Article {
	articles := make([]models.Article, 0, n)
	for i := 1; i <= n; i++ {
		articles = append(articles, models.Article{
			Title:    strings.TrimSpace(f.Sentence(titleWords)),
			Content:  f.Paragraph(paragraphsPerArticle, sentencesPerParagraph, wordsPerSentence, "\n\n"),
			PhotoURL: PhotoURL(i),
		})
	}
	return articles
}

// Seed appends n generated articles.
func Seed(ctx context.Context, conn *sql.DB, f *gofakeit.Faker, n int) error {
	if err := db.InsertArticles(ctx, conn, Articles(f, n)); err != nil {
		return errors.Wrap(err, "failed to seed articles")
	}
	slog.Info("seeded articles", "count", n)
	return nil
}

// Reset replaces every article with n freshly generated ones.
func Reset(ctx context.Context, conn *sql.DB, f *gofakeit.Faker, n int) error {
	if err := db.ReplaceArticles(ctx, conn, Articles(f, n)); err != nil {
		return errors.Wrap(err, "failed to reset articles")
	}
	slog.Info("reset articles", "count", n)
	return nil
}

// SeedIfEmpty seeds only when the articles table has no rows, and reports
// whether it did.
func SeedIfEmpty(ctx context.Context, conn *sql.DB, f *gofakeit.Faker, n int) (bool, error) {
	count, err := db.CountArticles(ctx, conn, models.ArticleQuery{})
	if err != nil {
		return false, errors.WithMessage(err, "failed to count articles")
	}
	if count > 0 {
		slog.Debug("articles already present, skipping seed", "count", count)
		return false, nil
	}
	return true, Seed(ctx, conn, f, n)
}
