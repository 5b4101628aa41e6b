// Package sanitizer normalizes user-provided identity fields before
// validation and persistence.
package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address so that lookups and
// uniqueness checks are case-insensitive. The local part is otherwise kept
// verbatim: rewriting it would silently map one address onto another, and
// odd shapes are the validator's job to reject.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims surrounding whitespace from a username.
// Case is preserved: usernames are display identifiers.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
