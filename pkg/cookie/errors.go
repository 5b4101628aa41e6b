package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("cookie: no signing secret provided")
	ErrSecretTooShort   = errors.New("cookie: signing secret too short")
	ErrInvalidSignature = errors.New("cookie: invalid signature")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
	ErrCookieNotFound   = errors.New("cookie: not found")
)
