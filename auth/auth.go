// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid CSRF token")
	ErrTokenFormat  = errors.New("invalid token format")
)

// Where tokens travel
const (
	CookieName = "csrfToken"
	FieldName  = "_csrfToken"
	HeaderName = "X-CSRF-Token"
)

// nonceLen is the random part of a token, before encoding.
const nonceLen = 24

// GenerateToken creates a signed CSRF token of the form nonce.signature
func GenerateToken(secret string) (string, error) {
	b := make([]byte, nonceLen) // 24 bytes = 192 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	nonce := encode(b)
	return nonce + "." + sign(nonce, secret), nil
}

// sign returns the HMAC of the nonce under secret.
// This is deterministic and verifiable
func sign(nonce, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(nonce))
	return encode(h.Sum(nil))
}

// encode is URL-safe base64 with padding trimmed for cleaner tokens
func encode(b []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}

// VerifyToken checks that the token was signed with secret
func VerifyToken(token, secret string) error {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" || sig == "" {
		return ErrTokenFormat
	}
	if !hmac.Equal([]byte(sig), []byte(sign(nonce, secret))) {
		return ErrInvalidToken
	}
	return nil
}

// ValidateSubmitted checks a submitted token against the cookie copy.
// Both must be identical and carry a valid signature.
func ValidateSubmitted(cookieToken, submitted, secret string) error {
	if cookieToken == "" || submitted == "" {
		return ErrInvalidToken
	}
	if !hmac.Equal([]byte(cookieToken), []byte(submitted)) {
		return ErrInvalidToken
	}
	return VerifyToken(cookieToken, secret)
}
