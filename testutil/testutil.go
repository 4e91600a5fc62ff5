// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/htmx-demo/auth"
	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/db"
	"github.com/danielhkuo/htmx-demo/models"
)

// TestCSRFSecret signs tokens in tests
const TestCSRFSecret = "test-csrf-secret"

// SetupTestDB opens a fresh SQLite database in a temp dir with the schema applied.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8765,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
		CSRFSecret:   TestCSRFSecret,
		PageSize:     10,
		SeedCount:    100,
		PollInterval: 2 * time.Second,
		LogLevel:     "info",
	}
}

// CreateTestArticles inserts n articles titled "Article 1".."Article n" and
// returns them with their IDs
func CreateTestArticles(t *testing.T, conn *sql.DB, n int) []models.Article {
	t.Helper()

	articles := make([]models.Article, 0, n)
	for i := 1; i <= n; i++ {
		articles = append(articles, models.Article{
			Title:    fmt.Sprintf("Article %d", i),
			Content:  fmt.Sprintf("Paragraph one of %d.\n\nParagraph two of %d.", i, i),
			PhotoURL: fmt.Sprintf("https://picsum.photos/seed/%d/600", i),
		})
	}
	return InsertTestArticles(t, conn, articles)
}

// InsertTestArticles inserts the given articles and returns them with IDs
// filled in, in insertion order
func InsertTestArticles(t *testing.T, conn *sql.DB, articles []models.Article) []models.Article {
	t.Helper()

	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		var id int64
		err := conn.QueryRow(`
			INSERT INTO articles (title, content, photo_url)
			VALUES ($1, $2, $3)
			RETURNING id
		`, a.Title, a.Content, a.PhotoURL).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to create test article: %v", err)
		}
		a.ID = id
		out = append(out, a)
	}
	return out
}

// CSRFToken returns a token signed with TestCSRFSecret
func CSRFToken(t *testing.T) string {
	t.Helper()

	token, err := auth.GenerateToken(TestCSRFSecret)
	if err != nil {
		t.Fatalf("Failed to generate CSRF token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request. A non-nil form becomes a
// urlencoded body.
func MakeRequest(method, path string, form url.Values, headers map[string]string) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// HTMXHeaders returns the headers htmx sends, plus any extras as name/value pairs
func HTMXHeaders(extra ...string) map[string]string {
	h := map[string]string{"HX-Request": "true"}
	for i := 0; i+1 < len(extra); i += 2 {
		h[extra[i]] = extra[i+1]
	}
	return h
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
