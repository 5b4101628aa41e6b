package token

import (
	"context"
	"fmt"
	"time"

	"github.com/ladanze/auth-api/pkg/randtoken"
)

// RefreshToken is a long-lived opaque credential. It is exchanged for a new
// access token and rotated on each use; it never carries resource claims.
type RefreshToken struct {
	Token     string     `bson:"token" json:"token"`
	AccountID string     `bson:"account_id" json:"accountId"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty" json:"revokedAt,omitempty"`
}

// IsExpired reports whether the token's lifetime has elapsed.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the token can still be exchanged: not revoked and
// not expired. A revoked token can never become active again.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && !t.IsExpired(now)
}

// RefreshStorage defines the persistence operations the ledger requires.
// FindByToken returns ErrTokenNotFound on a miss. MarkRevoked must be a
// conditional write that fails with ErrTokenNotFound when the token is
// missing or already revoked, making it the serialization point for
// concurrent rotations.
type RefreshStorage interface {
	Insert(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, value string) (*RefreshToken, error)
	MarkRevoked(ctx context.Context, value string, at time.Time) error
}

// RefreshLedger issues, looks up, revokes, and rotates refresh tokens.
type RefreshLedger struct {
	storage RefreshStorage
	ttl     time.Duration
	now     func() time.Time
}

// RefreshLedgerOption configures a RefreshLedger.
type RefreshLedgerOption func(*RefreshLedger)

// WithRefreshTokenTTL overrides the default 7-day refresh token lifetime.
func WithRefreshTokenTTL(ttl time.Duration) RefreshLedgerOption {
	return func(l *RefreshLedger) { l.ttl = ttl }
}

// NewRefreshLedger creates a refresh token ledger.
func NewRefreshLedger(storage RefreshStorage, opts ...RefreshLedgerOption) *RefreshLedger {
	l := &RefreshLedger{
		storage: storage,
		ttl:     7 * 24 * time.Hour,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create mints a new refresh token for the account.
func (l *RefreshLedger) Create(ctx context.Context, accountID string) (*RefreshToken, error) {
	value, err := randtoken.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := l.now().UTC()
	token := &RefreshToken{
		Token:     value,
		AccountID: accountID,
		ExpiresAt: now.Add(l.ttl),
		CreatedAt: now,
	}

	if err := l.storage.Insert(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return token, nil
}

// Get looks up an active refresh token. Missing, expired, and revoked
// tokens all fail with ErrInvalidRefreshToken.
func (l *RefreshLedger) Get(ctx context.Context, value string) (*RefreshToken, error) {
	token, err := l.storage.FindByToken(ctx, value)
	if err != nil || !token.IsActive(l.now()) {
		return nil, ErrInvalidRefreshToken
	}
	return token, nil
}

// Revoke permanently deactivates an active token. Losing a revocation race
// is reported as ErrInvalidRefreshToken, same as any other inactive token.
func (l *RefreshLedger) Revoke(ctx context.Context, value string) (*RefreshToken, error) {
	token, err := l.Get(ctx, value)
	if err != nil {
		return nil, err
	}

	at := l.now().UTC()
	if err := l.storage.MarkRevoked(ctx, value, at); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	token.RevokedAt = &at
	return token, nil
}

// Rotate revokes the given token and mints a fresh one for the same
// account. This is the only renewal path; the old token stays dead.
func (l *RefreshLedger) Rotate(ctx context.Context, value string) (*RefreshToken, error) {
	revoked, err := l.Revoke(ctx, value)
	if err != nil {
		return nil, err
	}
	return l.Create(ctx, revoked.AccountID)
}
