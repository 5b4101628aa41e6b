package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/token"
	"github.com/ladanze/auth-api/pkg/logger"
)

// TokenPair is the result of every successful authentication flow: a
// short-lived access token plus the opaque refresh token value.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccountStore is the slice of account operations the service needs.
type AccountStore interface {
	Create(ctx context.Context, email, username, password string) (*account.Account, error)
	FindByIdentifier(ctx context.Context, emailOrUsername string) (*account.Account, error)
	FindByID(ctx context.Context, accountID string) (*account.Account, error)
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*account.Account, error)
	SetPassword(ctx context.Context, accountID, newPassword string) (*account.Account, error)
	ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*account.Account, bool, error)
	ConfirmEmail(ctx context.Context, accountID string) error
}

// AccessTokenIssuer signs access tokens for an account.
type AccessTokenIssuer interface {
	Issue(acct *account.Account) (string, error)
}

// RefreshLedger mints and rotates opaque refresh tokens.
type RefreshLedger interface {
	Create(ctx context.Context, accountID string) (*token.RefreshToken, error)
	Rotate(ctx context.Context, value string) (*token.RefreshToken, error)
}

// EmailLedger issues and validates email confirmation and password
// reset tokens.
type EmailLedger interface {
	IssueConfirmation(ctx context.Context, accountID string) (*token.EmailToken, error)
	IssueReset(ctx context.Context, accountID string) (*token.EmailToken, error)
	ValidateConfirmation(ctx context.Context, value string) (*token.EmailToken, error)
	ValidateReset(ctx context.Context, value string) (*token.EmailToken, error)
}

// Mailer sends the transactional emails the flows trigger.
type Mailer interface {
	SendConfirmationEmail(ctx context.Context, to, username, tokenValue string) error
	SendPasswordResetEmail(ctx context.Context, to, username, tokenValue string) error
}

// Service orchestrates the authentication flows across accounts,
// tokens, and email. Emails are sent in the background; a delivery
// failure never fails the flow that triggered it.
type Service struct {
	accounts  AccountStore
	issuer    AccessTokenIssuer
	refresh   RefreshLedger
	email     EmailLedger
	mailer    Mailer
	logger    *slog.Logger
	mailDelay time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithMailTimeout sets the per-email timeout for background sends.
func WithMailTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.mailDelay = d }
}

// NewService creates the auth orchestrator.
func NewService(
	accounts AccountStore,
	issuer AccessTokenIssuer,
	refresh RefreshLedger,
	email EmailLedger,
	mailer Mailer,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		accounts:  accounts,
		issuer:    issuer,
		refresh:   refresh,
		email:     email,
		mailer:    mailer,
		logger:    logger.NewDiscard(),
		mailDelay: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new account, kicks off email confirmation, and
// signs the account in.
func (s *Service) Signup(ctx context.Context, email, username, password string) (*TokenPair, error) {
	acct, err := s.accounts.Create(ctx, email, username, password)
	if err != nil {
		return nil, err
	}

	record, err := s.email.IssueConfirmation(ctx, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue confirmation token: %w", err)
	}

	s.sendInBackground("confirmation email", func(ctx context.Context) error {
		return s.mailer.SendConfirmationEmail(ctx, acct.Email.Value, acct.Username, record.Confirm.Value)
	}, acct.ID)

	return s.mintPair(ctx, acct)
}

// Login authenticates by email or username plus password.
func (s *Service) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	acct, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !acct.VerifyPassword(password) {
		return nil, account.ErrWrongCredentials
	}

	s.logger.InfoContext(ctx, "account logged in",
		logger.AccountID(acct.ID),
		logger.Component("auth"),
	)
	return s.mintPair(ctx, acct)
}

// ConfirmEmail consumes a confirmation token, marks the email address
// confirmed, and signs the account in.
func (s *Service) ConfirmEmail(ctx context.Context, tokenValue string) (*TokenPair, error) {
	record, err := s.email.ValidateConfirmation(ctx, tokenValue)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.ConfirmEmail(ctx, record.AccountID); err != nil {
		return nil, err
	}

	acct, err := s.accounts.FindByID(ctx, record.AccountID)
	if err != nil {
		return nil, err
	}
	return s.mintPair(ctx, acct)
}

// RequestPasswordReset issues a reset token for the account and emails
// it. The caller learns nothing beyond whether the account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, identifier string) error {
	acct, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	record, err := s.email.IssueReset(ctx, acct.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.sendInBackground("password reset email", func(ctx context.Context) error {
		return s.mailer.SendPasswordResetEmail(ctx, acct.Email.Value, acct.Username, record.Reset.Value)
	}, acct.ID)

	return nil
}

// ValidateResetToken checks a reset token without consuming it, so a
// reset form can be shown only for live links.
func (s *Service) ValidateResetToken(ctx context.Context, tokenValue string) error {
	_, err := s.email.ValidateReset(ctx, tokenValue)
	return err
}

// ResetPassword consumes a reset token, replaces the password, and
// signs the account in.
func (s *Service) ResetPassword(ctx context.Context, tokenValue, newPassword string) (*TokenPair, error) {
	record, err := s.email.ValidateReset(ctx, tokenValue)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.SetPassword(ctx, record.AccountID, newPassword)
	if err != nil {
		return nil, err
	}
	return s.mintPair(ctx, acct)
}

// Refresh rotates the presented refresh token and issues a fresh
// access token for its account. The old token is dead afterwards
// whether or not the rest of the flow succeeds.
func (s *Service) Refresh(ctx context.Context, tokenValue string) (*TokenPair, error) {
	rotated, err := s.refresh.Rotate(ctx, tokenValue)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.FindByID(ctx, rotated.AccountID)
	if err != nil {
		return nil, err
	}

	access, err := s.issuer.Issue(acct)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: rotated.Token}, nil
}

// Account returns the account record for an authenticated caller.
func (s *Service) Account(ctx context.Context, accountID string) (*account.Account, error) {
	return s.accounts.FindByID(ctx, accountID)
}

// ChangePassword replaces the password after verifying the current one
// and signs the account in with fresh tokens.
func (s *Service) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*TokenPair, error) {
	acct, err := s.accounts.ChangePassword(ctx, accountID, oldPassword, newPassword)
	if err != nil {
		return nil, err
	}
	return s.mintPair(ctx, acct)
}

// ChangeEmailAndUsername applies profile changes. When the email value
// changed, confirmation starts over with a fresh token sent to the new
// address.
func (s *Service) ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*TokenPair, error) {
	acct, emailChanged, err := s.accounts.ChangeEmailAndUsername(ctx, accountID, newEmail, newUsername)
	if err != nil {
		return nil, err
	}

	if emailChanged {
		record, err := s.email.IssueConfirmation(ctx, acct.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to issue confirmation token: %w", err)
		}
		s.sendInBackground("confirmation email", func(ctx context.Context) error {
			return s.mailer.SendConfirmationEmail(ctx, acct.Email.Value, acct.Username, record.Confirm.Value)
		}, acct.ID)
	}

	return s.mintPair(ctx, acct)
}

func (s *Service) mintPair(ctx context.Context, acct *account.Account) (*TokenPair, error) {
	access, err := s.issuer.Issue(acct)
	if err != nil {
		return nil, err
	}

	refresh, err := s.refresh.Create(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh.Token}, nil
}

// sendInBackground runs an email send on a detached context so slow or
// failing delivery never blocks or fails the request that triggered it.
func (s *Service) sendInBackground(kind string, send func(ctx context.Context) error, accountID string) {
	log := s.logger
	timeout := s.mailDelay

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic while sending "+kind,
					slog.Any("panic", r),
					logger.AccountID(accountID),
					logger.Component("auth"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := send(ctx); err != nil {
			log.Error("failed to send "+kind,
				logger.Error(err),
				logger.AccountID(accountID),
				logger.Component("auth"),
			)
		}
	}()
}
