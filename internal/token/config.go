package token

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds token lifetime and key material settings.
type Config struct {
	PrivateKeyFile  string        `env:"JWT_PRIVATE_KEY_FILE,required"`           // PEM-encoded RSA private key, signs access tokens.
	PublicKeyFile   string        `env:"JWT_PUBLIC_KEY_FILE,required"`            // PEM-encoded RSA public key, verifies access tokens.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"180s"`      // Short access token lifetime.
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`     // Refresh token lifetime (7 days).
	EmailTokenTTL   time.Duration `env:"EMAIL_TOKEN_TTL" envDefault:"168h"`       // Confirmation/reset token lifetime (7 days).
}

// LoadKeyPair reads and parses the RSA key pair named by the config.
// Key material is loaded once at startup; rotation is out of scope.
func LoadKeyPair(cfg Config) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privPEM, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(cfg.PublicKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}
