package token

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ladanze/auth-api/internal/account"
)

// Claims are the access token contents. Subject carries the account id.
type Claims struct {
	Username         string         `json:"username"`
	Roles            []account.Role `json:"roles"`
	AccountCreatedAt int64          `json:"accountCreatedAt"`
	jwt.RegisteredClaims
}

// Forge creates and verifies short-lived access tokens, signed RS256 with a
// process-wide RSA key pair. Access tokens carry identity claims only; they
// never grant refresh capability.
type Forge struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
	now        func() time.Time
}

// ForgeOption configures a Forge.
type ForgeOption func(*Forge)

// WithAccessTokenTTL overrides the default 180s access token lifetime.
func WithAccessTokenTTL(ttl time.Duration) ForgeOption {
	return func(f *Forge) { f.ttl = ttl }
}

// NewForge creates an access token forge from an RSA key pair.
func NewForge(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, opts ...ForgeOption) *Forge {
	f := &Forge{
		privateKey: privateKey,
		publicKey:  publicKey,
		ttl:        180 * time.Second,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Issue signs an access token for the account.
func (f *Forge) Issue(acct *account.Account) (string, error) {
	now := f.now()

	claims := Claims{
		Username:         acct.Username,
		Roles:            acct.Roles,
		AccountCreatedAt: acct.CreatedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(f.privateKey)
	if err != nil {
		return "", errors.Join(ErrTokenCreation, err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of an access token and returns its
// claims. Every failure mode collapses into ErrInvalidAccessToken.
func (f *Forge) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return f.publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}
