package token

import "errors"

var (
	// ErrTokenCreation is returned when access token signing fails.
	// Treated as a server fault, never as caller input error.
	ErrTokenCreation = errors.New("error creating token")

	// ErrInvalidAccessToken is returned for any access token that fails
	// signature or expiry checks.
	ErrInvalidAccessToken = errors.New("invalid access token")

	// ErrInvalidRefreshToken covers missing, expired, and revoked refresh
	// tokens alike. The causes are deliberately not distinguished so the
	// error does not leak token state.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidConfirmToken covers missing and expired confirmation
	// tokens alike, for the same reason.
	ErrInvalidConfirmToken = errors.New("invalid confirm token")

	// ErrInvalidResetToken covers missing and expired password reset
	// tokens alike, for the same reason.
	ErrInvalidResetToken = errors.New("invalid reset password token")

	// ErrTokenNotFound is a storage-level miss. Ledgers collapse it into
	// the ErrInvalid* kinds before callers see it.
	ErrTokenNotFound = errors.New("token not found")
)
