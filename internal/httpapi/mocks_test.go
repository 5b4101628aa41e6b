package httpapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/auth"
	"github.com/ladanze/auth-api/internal/token"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, username, password string) (*auth.TokenPair, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*auth.TokenPair, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) ConfirmEmail(ctx context.Context, tokenValue string) (*auth.TokenPair, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, identifier string) error {
	args := m.Called(ctx, identifier)
	return args.Error(0)
}

func (m *MockAuthService) ValidateResetToken(ctx context.Context, tokenValue string) error {
	args := m.Called(ctx, tokenValue)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) (*auth.TokenPair, error) {
	args := m.Called(ctx, tokenValue, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, tokenValue string) (*auth.TokenPair, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Account(ctx context.Context, accountID string) (*account.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*auth.TokenPair, error) {
	args := m.Called(ctx, accountID, oldPassword, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*auth.TokenPair, error) {
	args := m.Called(ctx, accountID, newEmail, newUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

// MockVerifier is a mock implementation of TokenVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(tokenString string) (*token.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Claims), args.Error(1)
}
