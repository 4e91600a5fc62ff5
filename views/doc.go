// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the embedded html/template files.

# Layout

	templates/layout/{name}.html          {{define "layout/{name}"}}
	templates/element/{dir}/{name}.html   {{define "element/{dir}/{name}"}}
	templates/pages/{dir}/{name}.html     {{define "content"}} plus named blocks

Every page is parsed into its own copy of the layouts and elements, so pages
can reuse block names.

# Rendering

	view.Page(w, 200, views.LayoutDefault, "articles/index", data) // full page
	view.Page(w, 200, "", "articles/index", data)                  // content only
	view.Block(w, 200, "articles/index", "articles", data)         // one block
	view.Element(w, 200, "articles/search", data)                  // one element

Output is buffered, so a failing template never produces a partial response.
*/
package views
