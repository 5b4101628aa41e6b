// Package randtoken generates opaque random token values for credentials
// that are stored server-side and matched by exact value (refresh tokens,
// email confirmation and password reset tokens).
package randtoken

import (
	"crypto/rand"
	"fmt"
)

// Size is the default token length in characters.
const Size = 64

// URL-safe alphabet. Exactly 64 symbols, so each random byte maps uniformly
// onto one character without modulo bias.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// New returns a cryptographically random token of the default Size.
func New() (string, error) {
	return NewWithSize(Size)
}

// NewWithSize returns a cryptographically random token of the given length.
func NewWithSize(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("randtoken: invalid size %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("randtoken: %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[b&63]
	}
	return string(buf), nil
}

// Must returns a random token of the default Size and panics if the system
// entropy source fails. Entropy failure is not a recoverable condition for
// credential generation.
func Must() string {
	token, err := New()
	if err != nil {
		panic(err)
	}
	return token
}
