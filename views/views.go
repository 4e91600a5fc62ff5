// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/htmx-demo/auth"
)

var (
	ErrUnknownPage    = errors.New("unknown page")
	ErrUnknownBlock   = errors.New("unknown block")
	ErrUnknownElement = errors.New("unknown element")

	// ErrWrite marks a failure after the status line was sent. Callers must
	// not write another response.
	ErrWrite = errors.New("failed to write response")
)

// Layouts
const (
	LayoutDefault = "default"
	LayoutClassic = "classic"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheets, rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// Renderer executes the embedded templates. Each page is parsed together
// with every layout and element, so pages may reference both.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"comma":       comma,
	"add":         func(a, b int) int { return a + b },
	"paragraphs":  paragraphs,
	"jsonAttr":    jsonAttr,
	"csrfHeaders": csrfHeaders,
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS,
		"templates/layout/*.html",
		"templates/element/*/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts and elements: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	r := &Renderer{base: base, pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		// templates/pages/articles/index.html -> articles/index
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/pages/"), path.Ext(file))

		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// Page renders a page inside a layout. An empty layout renders only the
// page content.
func (r *Renderer) Page(w http.ResponseWriter, status int, layout, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}

	name := "content"
	if layout != "" {
		name = "layout/" + layout
	}
	return execute(w, status, t, name, data)
}

// Block renders one named block of a page without any layout. Blocks are
// the templates a page defines itself; layouts and elements are excluded.
func (r *Renderer) Block(w http.ResponseWriter, status int, page, block string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	if !isBlockName(block) || t.Lookup(block) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownBlock, block)
	}
	return execute(w, status, t, block, data)
}

// HasBlock reports whether page defines block.
func (r *Renderer) HasBlock(page, block string) bool {
	t, ok := r.pages[page]
	return ok && isBlockName(block) && t.Lookup(block) != nil
}

// isBlockName rejects layout and element names ("layout/default") and the
// per-file templates ParseFS creates ("index.html").
func isBlockName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/.")
}

// Element renders a standalone fragment such as "articles/search".
func (r *Renderer) Element(w http.ResponseWriter, status int, name string, data any) error {
	full := "element/" + name
	if r.base.Lookup(full) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownElement, name)
	}
	return execute(w, status, r.base, full, data)
}

// HasElement reports whether an element with the given name exists.
func (r *Renderer) HasElement(name string) bool {
	return r.base.Lookup("element/"+name) != nil
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func execute(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func comma(v any) string {
	switch n := v.(type) {
	case int:
		return humanize.Comma(int64(n))
	case int64:
		return humanize.Comma(n)
	default:
		return fmt.Sprint(v)
	}
}

// paragraphs splits text on blank lines.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// jsonAttr encodes v for attributes such as hx-vals and hx-headers.
func jsonAttr(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// csrfHeaders is the hx-headers value that attaches the CSRF token to every
// htmx request under the element.
func csrfHeaders(token string) (string, error) {
	return jsonAttr(map[string]string{auth.HeaderName: token})
}
