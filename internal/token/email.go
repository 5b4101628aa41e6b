package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ladanze/auth-api/pkg/randtoken"
)

// TokenSlot is one single-use token value with its expiry. A slot with no
// value never validates.
type TokenSlot struct {
	Value     string    `bson:"value,omitempty" json:"value,omitempty"`
	ExpiresAt time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}

// IsValid reports whether the slot holds a value that has not expired.
func (s TokenSlot) IsValid(now time.Time) bool {
	return s.Value != "" && now.Before(s.ExpiresAt)
}

// EmailToken is the single record per account holding the two independent
// email token slots: email confirmation and password reset. Issuing a new
// token for one purpose overwrites only that slot.
type EmailToken struct {
	AccountID string    `bson:"account_id" json:"accountId"`
	Confirm   TokenSlot `bson:"confirm_token" json:"confirmToken"`
	Reset     TokenSlot `bson:"reset_token" json:"resetToken"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// EmailTokenStorage defines the persistence operations the ledger requires.
// Find* methods return ErrTokenNotFound on a miss. SetConfirmSlot and
// SetResetSlot must write only their own slot's fields.
type EmailTokenStorage interface {
	Insert(ctx context.Context, token *EmailToken) error
	FindByAccount(ctx context.Context, accountID string) (*EmailToken, error)
	FindByConfirmValue(ctx context.Context, value string) (*EmailToken, error)
	FindByResetValue(ctx context.Context, value string) (*EmailToken, error)
	SetConfirmSlot(ctx context.Context, accountID string, slot TokenSlot) error
	SetResetSlot(ctx context.Context, accountID string, slot TokenSlot) error
}

// EmailLedger issues and validates single-use, purpose-scoped email tokens.
// Validation never mutates state; consuming a validated token is the
// caller's responsibility.
type EmailLedger struct {
	storage EmailTokenStorage
	ttl     time.Duration
	now     func() time.Time
}

// EmailLedgerOption configures an EmailLedger.
type EmailLedgerOption func(*EmailLedger)

// WithEmailTokenTTL overrides the default 7-day email token lifetime.
func WithEmailTokenTTL(ttl time.Duration) EmailLedgerOption {
	return func(l *EmailLedger) { l.ttl = ttl }
}

// NewEmailLedger creates an email token ledger.
func NewEmailLedger(storage EmailTokenStorage, opts ...EmailLedgerOption) *EmailLedger {
	l := &EmailLedger{
		storage: storage,
		ttl:     7 * 24 * time.Hour,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IssueConfirmation populates the confirm slot with a fresh token, creating
// the account's record if it does not exist yet. The reset slot is left
// untouched.
func (l *EmailLedger) IssueConfirmation(ctx context.Context, accountID string) (*EmailToken, error) {
	return l.issue(ctx, accountID, confirmSlot)
}

// IssueReset populates the reset slot with a fresh token, creating the
// account's record if it does not exist yet. The confirm slot is left
// untouched.
func (l *EmailLedger) IssueReset(ctx context.Context, accountID string) (*EmailToken, error) {
	return l.issue(ctx, accountID, resetSlot)
}

type slotKind int

const (
	confirmSlot slotKind = iota
	resetSlot
)

func (l *EmailLedger) issue(ctx context.Context, accountID string, kind slotKind) (*EmailToken, error) {
	value, err := randtoken.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate email token: %w", err)
	}

	now := l.now().UTC()
	slot := TokenSlot{Value: value, ExpiresAt: now.Add(l.ttl)}

	record, err := l.storage.FindByAccount(ctx, accountID)
	if errors.Is(err, ErrTokenNotFound) {
		record = &EmailToken{AccountID: accountID, CreatedAt: now}
		record.setSlot(kind, slot)
		if err := l.storage.Insert(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist email token: %w", err)
		}
		return record, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load email token: %w", err)
	}

	if kind == confirmSlot {
		err = l.storage.SetConfirmSlot(ctx, accountID, slot)
	} else {
		err = l.storage.SetResetSlot(ctx, accountID, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update email token: %w", err)
	}

	record.setSlot(kind, slot)
	return record, nil
}

func (t *EmailToken) setSlot(kind slotKind, slot TokenSlot) {
	if kind == confirmSlot {
		t.Confirm = slot
	} else {
		t.Reset = slot
	}
}

// ValidateConfirmation resolves a confirm token value. Unknown and expired
// values fail identically with ErrInvalidConfirmToken.
func (l *EmailLedger) ValidateConfirmation(ctx context.Context, value string) (*EmailToken, error) {
	record, err := l.storage.FindByConfirmValue(ctx, value)
	if err != nil || !record.Confirm.IsValid(l.now()) {
		return nil, ErrInvalidConfirmToken
	}
	return record, nil
}

// ValidateReset resolves a reset token value. Unknown and expired values
// fail identically with ErrInvalidResetToken.
func (l *EmailLedger) ValidateReset(ctx context.Context, value string) (*EmailToken, error) {
	record, err := l.storage.FindByResetValue(ctx, value)
	if err != nil || !record.Reset.IsValid(l.now()) {
		return nil, ErrInvalidResetToken
	}
	return record, nil
}
