package ratelimit

import "errors"

// ErrInvalidConfig indicates unusable limiter parameters.
var ErrInvalidConfig = errors.New("invalid rate limit configuration")
