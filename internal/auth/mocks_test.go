package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/token"
)

// MockAccountStore is a mock implementation of AccountStore.
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Create(ctx context.Context, email, username, password string) (*account.Account, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountStore) FindByIdentifier(ctx context.Context, emailOrUsername string) (*account.Account, error) {
	args := m.Called(ctx, emailOrUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountStore) FindByID(ctx context.Context, accountID string) (*account.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountStore) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*account.Account, error) {
	args := m.Called(ctx, accountID, oldPassword, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountStore) SetPassword(ctx context.Context, accountID, newPassword string) (*account.Account, error) {
	args := m.Called(ctx, accountID, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountStore) ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*account.Account, bool, error) {
	args := m.Called(ctx, accountID, newEmail, newUsername)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*account.Account), args.Bool(1), args.Error(2)
}

func (m *MockAccountStore) ConfirmEmail(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockIssuer is a mock implementation of AccessTokenIssuer.
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(acct *account.Account) (string, error) {
	args := m.Called(acct)
	return args.String(0), args.Error(1)
}

// MockRefreshLedger is a mock implementation of RefreshLedger.
type MockRefreshLedger struct {
	mock.Mock
}

func (m *MockRefreshLedger) Create(ctx context.Context, accountID string) (*token.RefreshToken, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.RefreshToken), args.Error(1)
}

func (m *MockRefreshLedger) Rotate(ctx context.Context, value string) (*token.RefreshToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.RefreshToken), args.Error(1)
}

// MockEmailLedger is a mock implementation of EmailLedger.
type MockEmailLedger struct {
	mock.Mock
}

func (m *MockEmailLedger) IssueConfirmation(ctx context.Context, accountID string) (*token.EmailToken, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.EmailToken), args.Error(1)
}

func (m *MockEmailLedger) IssueReset(ctx context.Context, accountID string) (*token.EmailToken, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.EmailToken), args.Error(1)
}

func (m *MockEmailLedger) ValidateConfirmation(ctx context.Context, value string) (*token.EmailToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.EmailToken), args.Error(1)
}

func (m *MockEmailLedger) ValidateReset(ctx context.Context, value string) (*token.EmailToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.EmailToken), args.Error(1)
}

// MockMailer is a mock implementation of Mailer.
type MockMailer struct {
	mock.Mock

	sent chan string
}

// notifyOnSend makes the mock signal on the returned channel after each
// send, so tests can wait for the background goroutine deterministically.
func (m *MockMailer) notifyOnSend() <-chan string {
	m.sent = make(chan string, 4)
	return m.sent
}

func (m *MockMailer) SendConfirmationEmail(ctx context.Context, to, username, tokenValue string) error {
	args := m.Called(ctx, to, username, tokenValue)
	if m.sent != nil {
		m.sent <- "confirm"
	}
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, to, username, tokenValue string) error {
	args := m.Called(ctx, to, username, tokenValue)
	if m.sent != nil {
		m.sent <- "reset"
	}
	return args.Error(0)
}
