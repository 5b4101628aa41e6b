package cookie

import (
	"net/http"
	"strings"
)

// Config holds cookie manager settings.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS,required"`          // Comma-separated; first signs, rest verify.
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// NewFromConfig creates a Manager from environment-driven settings.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for _, s := range strings.Split(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	configOpts := []Option{
		WithPath(cfg.Path),
		WithSameSite(cfg.SameSite),
		WithSecure(cfg.Secure),
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}

	return New(secrets, append(configOpts, opts...)...)
}
