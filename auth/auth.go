// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrNoSecret     = errors.New("no shared secret configured")
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// ValidateBearer checks an Authorization header against the shared secret.
// An empty secret rejects every caller.
func ValidateBearer(header, secret string) error {
	if secret == "" {
		return ErrNoSecret
	}
	token, err := BearerToken(header)
	if err != nil {
		return err
	}
	// Compare digests so the comparison time does not depend on token length
	got := sha256.Sum256([]byte(token))
	want := sha256.Sum256([]byte(secret))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidToken
	}
	return nil
}

// HasSession reports whether a caller-supplied session id is usable. The id
// is opaque and compared byte for byte; whitespace only counts as absent.
func HasSession(session string) bool {
	return strings.TrimSpace(session) != ""
}
