package httpapi

import "time"

// Config holds transport-level settings.
type Config struct {
	RefreshCookieName string        `env:"REFRESH_COOKIE_NAME" envDefault:"refresh_token"`
	RefreshCookieTTL  time.Duration `env:"REFRESH_COOKIE_TTL" envDefault:"168h"`
	SecureCookies     bool          `env:"SECURE_COOKIES" envDefault:"true"`
	MaxBodyBytes      int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"65536"`
}
