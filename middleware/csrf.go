// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/htmx-demo/auth"
)

// CSRF implements double-submit protection. Every response carries a signed
// token cookie; state-changing requests must echo the same token in the
// X-CSRF-Token header or the _csrfToken form field.
func CSRF(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieToken string
			if c, err := r.Cookie(auth.CookieName); err == nil && auth.VerifyToken(c.Value, secret) == nil {
				cookieToken = c.Value
			}

			if !isSafeMethod(r.Method) {
				submitted := r.Header.Get(auth.HeaderName)
				if submitted == "" {
					submitted = r.PostFormValue(auth.FieldName)
				}
				if err := auth.ValidateSubmitted(cookieToken, submitted, secret); err != nil {
					slog.Warn("rejected request with bad CSRF token",
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", RequestID(r),
						"error", err,
					)
					HTMLError(w, http.StatusForbidden, "Invalid or missing CSRF token. Reload the page and try again.")
					return
				}
			}

			token := cookieToken
			if token == "" {
				var err error
				token, err = auth.GenerateToken(secret)
				if err != nil {
					slog.Error("failed to generate CSRF token", "error", err)
					HTMLError(w, http.StatusInternalServerError, "Failed to start session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     auth.CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken returns the token for embedding in forms and hx-headers.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey).(string)
	return token
}

// WithCSRFToken stores token on the request context, as CSRF does.
func WithCSRFToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), csrfTokenKey, token))
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
