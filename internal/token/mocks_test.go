package token

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRefreshStorage is a mock implementation of RefreshStorage.
type MockRefreshStorage struct {
	mock.Mock
}

func (m *MockRefreshStorage) Insert(ctx context.Context, token *RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshStorage) FindByToken(ctx context.Context, value string) (*RefreshToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefreshToken), args.Error(1)
}

func (m *MockRefreshStorage) MarkRevoked(ctx context.Context, value string, at time.Time) error {
	args := m.Called(ctx, value, at)
	return args.Error(0)
}

// MockEmailTokenStorage is a mock implementation of EmailTokenStorage.
type MockEmailTokenStorage struct {
	mock.Mock
}

func (m *MockEmailTokenStorage) Insert(ctx context.Context, token *EmailToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockEmailTokenStorage) FindByAccount(ctx context.Context, accountID string) (*EmailToken, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmailToken), args.Error(1)
}

func (m *MockEmailTokenStorage) FindByConfirmValue(ctx context.Context, value string) (*EmailToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmailToken), args.Error(1)
}

func (m *MockEmailTokenStorage) FindByResetValue(ctx context.Context, value string) (*EmailToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmailToken), args.Error(1)
}

func (m *MockEmailTokenStorage) SetConfirmSlot(ctx context.Context, accountID string, slot TokenSlot) error {
	args := m.Called(ctx, accountID, slot)
	return args.Error(0)
}

func (m *MockEmailTokenStorage) SetResetSlot(ctx context.Context, accountID string, slot TokenSlot) error {
	args := m.Called(ctx, accountID, slot)
	return args.Error(0)
}
