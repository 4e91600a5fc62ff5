// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/db"
	"github.com/danielhkuo/htmx-demo/middleware"
	"github.com/danielhkuo/htmx-demo/models"
	"github.com/danielhkuo/htmx-demo/paginate"
	"github.com/danielhkuo/htmx-demo/views"
)

type ArticleHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	view *views.Renderer
}

func NewArticleHandler(db *sql.DB, cfg cliparse.Config, view *views.Renderer) *ArticleHandler {
	return &ArticleHandler{db: db, cfg: cfg, view: view}
}

// articleList is the data behind every listing template.
type articleList struct {
	page
	Query    string
	Articles []models.Article
	Paging   paginate.Page
}

type articleView struct {
	page
	Article models.Article
}

func (h *ArticleHandler) pageOptions() paginate.Options {
	return paginate.Options{
		MaxLimit:    h.cfg.PageSize,
		SortFields:  []string{models.SortID, models.SortTitle, models.SortPhotoURL},
		DefaultSort: models.SortID,
	}
}

// load runs the count and list queries for the request's page. Errors are
// reported through the returned status and message.
func (h *ArticleHandler) load(r *http.Request) (articleList, int, string) {
	params := paginate.ParseRequest(r, h.pageOptions())
	query := models.ArticleQuery{
		Search:    r.URL.Query().Get("q"),
		Sort:      params.Sort,
		Direction: params.Direction,
		Limit:     params.Limit,
		Offset:    params.Offset(),
	}

	count, err := db.CountArticles(r.Context(), h.db, query)
	if err != nil {
		slog.Error("failed to count articles", "error", err)
		return articleList{}, http.StatusInternalServerError, "Database error"
	}

	paging, err := paginate.New(r, params, count)
	if err != nil {
		return articleList{}, http.StatusNotFound, "Page not found"
	}

	articles, err := db.ListArticles(r.Context(), h.db, query)
	if err != nil {
		slog.Error("failed to list articles", "error", err)
		return articleList{}, http.StatusInternalServerError, "Database error"
	}

	return articleList{
		page:     newPage(r, "Articles"),
		Query:    query.Search,
		Articles: articles,
		Paging:   paging,
	}, http.StatusOK, ""
}

// Index handles GET /articles
// htmx requests (infinite scroll) get the page without its layout
func (h *ArticleHandler) Index(w http.ResponseWriter, r *http.Request) {
	data, status, msg := h.load(r)
	if status != http.StatusOK {
		renderError(w, r, h.view, status, msg)
		return
	}

	layout := views.LayoutDefault
	if middleware.IsHTMX(r) {
		layout = ""
	}
	checkRender(w, h.view.Page(w, http.StatusOK, layout, "articles/index", data))
}

// HTMXIndex handles GET /articles/htmx-index
// htmx requests get only the block named by HX-Target
func (h *ArticleHandler) HTMXIndex(w http.ResponseWriter, r *http.Request) {
	data, status, msg := h.load(r)
	if status != http.StatusOK {
		renderError(w, r, h.view, status, msg)
		return
	}

	if !middleware.IsHTMX(r) {
		checkRender(w, h.view.Page(w, http.StatusOK, views.LayoutDefault, "articles/index", data))
		return
	}

	target := middleware.Target(r)
	if target == "" {
		checkRender(w, h.view.Page(w, http.StatusOK, "", "articles/index", data))
		return
	}
	if !h.view.HasBlock("articles/index", target) {
		renderError(w, r, h.view, http.StatusNotFound, "Unknown target "+target)
		return
	}
	checkRender(w, h.view.Block(w, http.StatusOK, "articles/index", target, data))
}

// HTMXIndexWithElement handles GET /articles/htmx-index-with-element
// htmx requests get the bare article list element
func (h *ArticleHandler) HTMXIndexWithElement(w http.ResponseWriter, r *http.Request) {
	data, status, msg := h.load(r)
	if status != http.StatusOK {
		renderError(w, r, h.view, status, msg)
		return
	}

	if middleware.IsHTMX(r) {
		checkRender(w, h.view.Element(w, http.StatusOK, "articles/index", data))
		return
	}
	checkRender(w, h.view.Page(w, http.StatusOK, views.LayoutDefault, "articles/index", data))
}

// Search handles GET /articles/search?q=
// htmx requests get the element named by X-Fragment (default "search")
func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	data, status, msg := h.load(r)
	if status != http.StatusOK {
		renderError(w, r, h.view, status, msg)
		return
	}

	if middleware.IsHTMX(r) {
		element := "articles/" + middleware.Fragment(r, "search")
		if !h.view.HasElement(element) {
			renderError(w, r, h.view, http.StatusNotFound, "Unknown fragment")
			return
		}
		checkRender(w, h.view.Element(w, http.StatusOK, element, data))
		return
	}
	checkRender(w, h.view.Page(w, http.StatusOK, views.LayoutClassic, "articles/search", data))
}

// parseID reads the {id} path value
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// View handles GET /articles/{id}
func (h *ArticleHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		renderError(w, r, h.view, http.StatusNotFound, "Article not found")
		return
	}

	article, err := db.GetArticle(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		renderError(w, r, h.view, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		slog.Error("failed to get article", "error", err, "id", id)
		renderError(w, r, h.view, http.StatusInternalServerError, "Database error")
		return
	}

	data := articleView{page: newPage(r, article.Title), Article: article}
	checkRender(w, h.view.Page(w, http.StatusOK, views.LayoutClassic, "articles/view", data))
}

// Delete handles POST /articles/{id}/delete
// htmx removes the row itself, so it gets an empty 200; forms are redirected
// back to the search page
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		renderError(w, r, h.view, http.StatusNotFound, "Article not found")
		return
	}

	err := db.DeleteArticle(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		renderError(w, r, h.view, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete article", "error", err, "id", id)
		renderError(w, r, h.view, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("article deleted", "id", id)

	if middleware.IsHTMX(r) {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/articles/search", http.StatusSeeOther)
}

// ListJSON handles GET /api/articles
func (h *ArticleHandler) ListJSON(w http.ResponseWriter, r *http.Request) {
	data, status, msg := h.load(r)
	if status != http.StatusOK {
		middleware.ErrorResponse(w, status, msg)
		return
	}

	articles := data.Articles
	if articles == nil {
		articles = []models.Article{}
	}

	p := data.Paging
	middleware.JSONResponse(w, http.StatusOK, models.ArticleListResponse{
		Articles: articles,
		Paging: models.PagingResponse{
			Page:      p.Page,
			Limit:     p.Limit,
			Count:     p.Count,
			PageCount: p.PageCount,
			HasNext:   p.HasNext(),
			HasPrev:   p.HasPrev(),
			Sort:      p.Sort,
			Direction: p.Direction,
		},
		Query: data.Query,
	})
}
