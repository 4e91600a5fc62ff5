// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strings"
)

// Request headers sent by htmx, plus X-Fragment which pages set through
// hx-headers to pick a fragment template.
const (
	HeaderRequest  = "HX-Request"
	HeaderTarget   = "HX-Target"
	HeaderFragment = "X-Fragment"
)

// StatusStopPolling tells htmx to stop a polling trigger. The body is
// still swapped in.
const StatusStopPolling = 286

// IsHTMX reports whether the request was issued by htmx rather than a full
// page navigation.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// Target returns the id of the element htmx will swap into, or "".
func Target(r *http.Request) string {
	return strings.TrimPrefix(strings.TrimSpace(r.Header.Get(HeaderTarget)), "#")
}

// Fragment returns the fragment name requested via X-Fragment, or def.
func Fragment(r *http.Request, def string) string {
	if name := strings.TrimSpace(r.Header.Get(HeaderFragment)); name != "" {
		return name
	}
	return def
}
