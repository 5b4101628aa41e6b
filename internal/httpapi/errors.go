package httpapi

import "errors"

var (
	ErrInvalidRequestBody  = errors.New("invalid request body")
	ErrMissingAccessToken  = errors.New("missing or malformed authorization header")
	ErrMissingRefreshToken = errors.New("missing refresh token")
)
