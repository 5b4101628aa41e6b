package account

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Insert(ctx context.Context, acct *Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockStorage) FindByIdentifier(ctx context.Context, emailOrUsername string) (*Account, error) {
	args := m.Called(ctx, emailOrUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockStorage) FindByID(ctx context.Context, accountID string) (*Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockStorage) TakenFields(ctx context.Context, email, username, excludeID string) ([]string, error) {
	args := m.Called(ctx, email, username, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) UpdatePasswordHash(ctx context.Context, accountID, hash string) error {
	args := m.Called(ctx, accountID, hash)
	return args.Error(0)
}

func (m *MockStorage) UpdateEmailAndUsername(ctx context.Context, accountID, email string, confirmed bool, username string) error {
	args := m.Called(ctx, accountID, email, confirmed, username)
	return args.Error(0)
}

func (m *MockStorage) SetEmailConfirmed(ctx context.Context, accountID string, confirmed bool) error {
	args := m.Called(ctx, accountID, confirmed)
	return args.Error(0)
}
