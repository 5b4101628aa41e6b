package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ladanze/auth-api/pkg/logger"
	"github.com/ladanze/auth-api/pkg/sanitizer"
	"github.com/ladanze/auth-api/pkg/validator"
)

// Storage defines the persistence operations the store requires.
// Implementations must return ErrAccountNotFound for missed lookups and a
// ConflictError when a unique index rejects a write.
type Storage interface {
	Insert(ctx context.Context, acct *Account) error
	FindByIdentifier(ctx context.Context, emailOrUsername string) (*Account, error)
	FindByID(ctx context.Context, accountID string) (*Account, error)
	// TakenFields reports which of email/username are already held by
	// another account. excludeID ignores the caller's own record so
	// unchanged fields do not conflict with themselves.
	TakenFields(ctx context.Context, email, username, excludeID string) ([]string, error)
	UpdatePasswordHash(ctx context.Context, accountID, hash string) error
	UpdateEmailAndUsername(ctx context.Context, accountID, email string, confirmed bool, username string) error
	SetEmailConfirmed(ctx context.Context, accountID string, confirmed bool) error
}

// Store owns account records: creation, lookup, and credential mutation.
// Raw passwords are hashed here, before they ever reach Storage.
type Store struct {
	storage           Storage
	logger            *slog.Logger
	bcryptCost        int
	passwordMinLength int
	now               func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a custom logger for the store.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithBcryptCost sets the bcrypt work factor for password hashing.
func WithBcryptCost(cost int) StoreOption {
	return func(s *Store) { s.bcryptCost = cost }
}

// WithPasswordMinLength sets the minimum accepted password length.
func WithPasswordMinLength(min int) StoreOption {
	return func(s *Store) { s.passwordMinLength = min }
}

// NewStore creates an account store.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:           storage,
		logger:            logger.NewDiscard(),
		bcryptCost:        10,
		passwordMinLength: 8,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the signup input, hashes the password, and persists a new
// account. Collisions on email and/or username are reported together in a
// single ConflictError.
func (s *Store) Create(ctx context.Context, email, username, rawPassword string) (*Account, error) {
	email = sanitizer.NormalizeEmail(email)
	username = sanitizer.NormalizeUsername(username)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.Required("username", username),
		validator.MinLength("password", rawPassword, s.passwordMinLength),
	); err != nil {
		return nil, err
	}

	taken, err := s.storage.TakenFields(ctx, email, username, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	if len(taken) > 0 {
		return nil, &ConflictError{Fields: taken}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := &Account{
		ID:           uuid.NewString(),
		Email:        Email{Value: email},
		Username:     username,
		PasswordHash: string(hash),
		Roles:        DefaultRoles(),
		CreatedAt:    s.now().UTC(),
	}

	// The unique indexes are the authority: a concurrent signup that won
	// the race surfaces here as a ConflictError from Insert.
	if err := s.storage.Insert(ctx, acct); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "account created",
		logger.AccountID(acct.ID),
		logger.Component("account"),
	)
	return acct, nil
}

// FindByIdentifier resolves an account by email address or username.
func (s *Store) FindByIdentifier(ctx context.Context, emailOrUsername string) (*Account, error) {
	return s.storage.FindByIdentifier(ctx, emailOrUsername)
}

// FindByID resolves an account by its immutable id.
func (s *Store) FindByID(ctx context.Context, accountID string) (*Account, error) {
	return s.storage.FindByID(ctx, accountID)
}

// ChangePassword replaces the password after verifying the old one.
func (s *Store) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*Account, error) {
	acct, err := s.storage.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !acct.VerifyPassword(oldPassword) {
		return nil, ErrWrongCredentials
	}

	return s.setPassword(ctx, acct, newPassword)
}

// SetPassword replaces the password without an old-password check. It backs
// the reset-password flow, where a validated reset token stands in for the
// old password.
func (s *Store) SetPassword(ctx context.Context, accountID, newPassword string) (*Account, error) {
	acct, err := s.storage.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.setPassword(ctx, acct, newPassword)
}

func (s *Store) setPassword(ctx context.Context, acct *Account, newPassword string) (*Account, error) {
	if err := validator.Apply(
		validator.MinLength("password", newPassword, s.passwordMinLength),
	); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdatePasswordHash(ctx, acct.ID, string(hash)); err != nil {
		return nil, err
	}

	acct.PasswordHash = string(hash)
	return acct, nil
}

// ChangeEmailAndUsername applies both changes and reports whether the email
// value actually changed, so the caller knows to restart email confirmation.
// Changing the email value resets its confirmed flag.
func (s *Store) ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*Account, bool, error) {
	acct, err := s.storage.FindByID(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	newEmail = sanitizer.NormalizeEmail(newEmail)
	newUsername = sanitizer.NormalizeUsername(newUsername)

	emailChanged := acct.Email.Value != newEmail
	usernameChanged := acct.Username != newUsername
	if !emailChanged && !usernameChanged {
		return acct, false, nil
	}

	if err := validator.Apply(
		validator.ValidEmail("email", newEmail),
		validator.Required("username", newUsername),
	); err != nil {
		return nil, false, err
	}

	taken, err := s.storage.TakenFields(ctx, newEmail, newUsername, acct.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	if len(taken) > 0 {
		return nil, false, &ConflictError{Fields: taken}
	}

	confirmed := acct.Email.Confirmed && !emailChanged
	if err := s.storage.UpdateEmailAndUsername(ctx, acct.ID, newEmail, confirmed, newUsername); err != nil {
		return nil, false, err
	}

	acct.Email = Email{Value: newEmail, Confirmed: confirmed}
	acct.Username = newUsername
	return acct, emailChanged, nil
}

// ConfirmEmail marks the account's email address as confirmed.
func (s *Store) ConfirmEmail(ctx context.Context, accountID string) error {
	return s.storage.SetEmailConfirmed(ctx, accountID, true)
}
