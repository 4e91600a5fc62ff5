// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides CSRF token generation and validation.

# Tokens

Tokens are a random 24-byte nonce plus its HMAC-SHA256 signature:

	token, err := auth.GenerateToken(secret) // "nonce.signature"
	err := auth.VerifyToken(token, secret)

Both parts are URL-safe base64 encoded without padding. Because the
signature is derived from the secret, a token can be verified without
storing it anywhere.

# Double Submit

The server hands the token out in a cookie and embeds the same value in
forms (_csrfToken) and htmx requests (X-CSRF-Token). A state-changing
request is accepted only when both copies match and the signature checks:

	err := auth.ValidateSubmitted(cookie.Value, r.FormValue("_csrfToken"), secret)

See middleware.CSRF for the HTTP side.
*/
package auth
